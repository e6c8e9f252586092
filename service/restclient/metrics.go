package restclient

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "coinboard",
	Name:      "upstream_request_seconds",
	Help:      "Duration of upstream API calls including retries.",
	Buckets:   prometheus.DefBuckets,
}, []string{"host", "outcome"})

func observe(host string, err error, took time.Duration) {
	upstreamDuration.WithLabelValues(host, outcome(err)).Observe(took.Seconds())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrClient):
		return "client_error"
	case errors.Is(err, ErrServer):
		return "server_error"
	case errors.Is(err, ErrDecode):
		return "decode_error"
	default:
		return "error"
	}
}
