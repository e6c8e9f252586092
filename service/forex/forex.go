package forex

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kylycht/coinboard/model"
	"github.com/kylycht/coinboard/service"
	"github.com/kylycht/coinboard/service/restclient"
)

const (
	BaseURL string = "https://api.exchangerate-api.com/v4/" // base URL of the exchange rate API
)

type Response struct {
	Base            string             `json:"base"`
	Date            string             `json:"date"`
	TimeLastUpdated int64              `json:"time_last_updated"`
	Rates           map[string]float64 `json:"rates"`
}

type client struct {
	rest *restclient.Client // transport to the exchange rate API
}

func New(baseURL string, opts ...restclient.Option) (service.RateSource, error) {
	if baseURL == "" {
		baseURL = BaseURL
	}

	rest, err := restclient.New(baseURL, opts...)
	if err != nil {
		return nil, err
	}

	return &client{rest: rest}, nil
}

// latest fetches every rate quoted against base.
// GET /latest/USD
func (f *client) latest(ctx context.Context, base string) (*Response, error) {
	r := &Response{}

	if err := f.rest.Get(ctx, "latest/"+url.PathEscape(base), nil, r); err != nil {
		return nil, fmt.Errorf("unable to fetch rates for %s: %w", base, err)
	}

	return r, nil
}

// GetRates implements service.RateSource.
// Non-positive rates are dropped.
func (f *client) GetRates(ctx context.Context, base string) (map[string]float64, error) {
	r, err := f.latest(ctx, base)
	if err != nil {
		return nil, err
	}

	rates := make(map[string]float64, len(r.Rates))
	for symbol, rate := range r.Rates {
		if rate <= 0 {
			log.Debug().Str("base", base).Str("symbol", symbol).Float64("rate", rate).Msg("skipping non-positive rate")
			continue
		}

		rates[symbol] = rate
	}

	return rates, nil
}

// GetRate implements service.RateSource.
func (f *client) GetRate(ctx context.Context, from, to string) (model.ExchangeRate, error) {
	if from == to {
		return newRate(from, to, 1, time.Now()), nil
	}

	r, err := f.latest(ctx, from)
	if err != nil {
		return model.ExchangeRate{}, err
	}

	rate, ok := r.Rates[to]
	if !ok || rate <= 0 {
		return model.ExchangeRate{}, fmt.Errorf("%w: %s/%s", service.ErrRateNotFound, from, to)
	}

	updated := time.Now()
	if r.TimeLastUpdated > 0 {
		updated = time.Unix(r.TimeLastUpdated, 0)
	}

	return newRate(from, to, rate, updated), nil
}

func newRate(from, to string, rate float64, updated time.Time) model.ExchangeRate {
	return model.ExchangeRate{
		Base:      model.Currency{Symbol: from, CurrencyType: model.Fiat},
		Target:    model.Currency{Symbol: to, CurrencyType: model.Fiat},
		Rate:      rate,
		UpdatedAt: updated,
	}
}
