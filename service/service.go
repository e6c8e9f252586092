package service

import (
	"context"
	"errors"

	"github.com/kylycht/coinboard/model"
)

var (
	ErrRateNotFound  = errors.New("exchange rate not found")
	ErrPriceNotFound = errors.New("asset price not found")
)

// RateSource describes
// methods specs for obtaining exchange rates
type RateSource interface {
	// GetRates returns all rates quoted
	// against the base currency
	GetRates(ctx context.Context, base string) (map[string]float64, error)

	// GetRate returns exchange rate
	// for specified pair
	GetRate(ctx context.Context, from, to string) (model.ExchangeRate, error)
}

// PriceSource supplies the USD price of a crypto asset.
type PriceSource interface {
	Price(ctx context.Context, id string) (float64, error)
}

// Market describes the coin listing provider.
type Market interface {
	PriceSource

	Markets(ctx context.Context, q model.MarketsQuery) ([]model.CoinMarket, error)
	Overview(ctx context.Context, id string, days int) (model.CoinOverview, error)
	Trending(ctx context.Context) ([]model.TrendingCoin, error)
}

// News describes the news feed provider.
type News interface {
	Latest(ctx context.Context) ([]model.NewsItem, error)
}
