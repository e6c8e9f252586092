package converter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var conversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "coinboard",
	Name:      "conversions_total",
	Help:      "Conversions served, by conversion rule.",
}, []string{"rule"})
