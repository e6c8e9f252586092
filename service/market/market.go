// Package market is the CoinGecko client behind the coin listing, coin pages,
// trending feed and the asset price used by conversions.
package market

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/kylycht/coinboard/model"
	"github.com/kylycht/coinboard/service"
	"github.com/kylycht/coinboard/service/restclient"
)

const (
	BaseURL        = "https://api.coingecko.com/api/v3/"
	APIKeyHeader   = "x-cg-demo-api-key"
	DefaultPerPage = 100
	DefaultDays    = 30
	vsCurrency     = "usd"
)

type (
	detailsResponse struct {
		ID          string `json:"id"`
		Symbol      string `json:"symbol"`
		Name        string `json:"name"`
		Description struct {
			En string `json:"en"`
		} `json:"description"`
		Image struct {
			Large string `json:"large"`
		} `json:"image"`
		MarketData struct {
			CurrentPrice             map[string]float64 `json:"current_price"`
			PriceChangePercentage24h float64            `json:"price_change_percentage_24h"`
			MarketCap                map[string]float64 `json:"market_cap"`
			TotalVolume              map[string]float64 `json:"total_volume"`
			ATH                      map[string]float64 `json:"ath"`
			CirculatingSupply        float64            `json:"circulating_supply"`
		} `json:"market_data"`
	}

	chartResponse struct {
		Prices [][2]float64 `json:"prices"`
	}

	trendingResponse struct {
		Coins []struct {
			Item model.TrendingCoin `json:"item"`
		} `json:"coins"`
	}
)

type client struct {
	rest *restclient.Client
}

func New(baseURL string, opts ...restclient.Option) (service.Market, error) {
	if baseURL == "" {
		baseURL = BaseURL
	}

	rest, err := restclient.New(baseURL, opts...)
	if err != nil {
		return nil, err
	}

	return &client{rest: rest}, nil
}

// Markets implements service.Market.
// GET /coins/markets?vs_currency=usd&order=market_cap_desc&per_page=100&page=1
func (c *client) Markets(ctx context.Context, q model.MarketsQuery) ([]model.CoinMarket, error) {
	if q.Page < 1 {
		q.Page = 1
	}

	if q.PerPage < 1 || q.PerPage > 250 {
		q.PerPage = DefaultPerPage
	}

	query := url.Values{}
	query.Set("vs_currency", vsCurrency)
	query.Set("order", "market_cap_desc")
	query.Set("per_page", strconv.Itoa(q.PerPage))
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("sparkline", "false")

	if len(q.IDs) > 0 {
		query.Set("ids", strings.Join(q.IDs, ","))
	}

	var coins []model.CoinMarket
	if err := c.rest.Get(ctx, "coins/markets", query, &coins); err != nil {
		return nil, fmt.Errorf("unable to fetch markets: %w", err)
	}

	return coins, nil
}

// Details returns the market data of a single coin.
// GET /coins/bitcoin?localization=false&tickers=false&market_data=true
func (c *client) Details(ctx context.Context, id string) (model.CoinDetails, error) {
	query := url.Values{}
	query.Set("localization", "false")
	query.Set("tickers", "false")
	query.Set("market_data", "true")
	query.Set("community_data", "false")
	query.Set("developer_data", "false")
	query.Set("sparkline", "false")

	r := detailsResponse{}
	if err := c.rest.Get(ctx, "coins/"+url.PathEscape(id), query, &r); err != nil {
		return model.CoinDetails{}, fmt.Errorf("unable to fetch details of %s: %w", id, err)
	}

	md := r.MarketData

	return model.CoinDetails{
		ID:                       r.ID,
		Symbol:                   r.Symbol,
		Name:                     r.Name,
		Description:              r.Description.En,
		Image:                    r.Image.Large,
		CurrentPrice:             md.CurrentPrice[vsCurrency],
		PriceChangePercentage24h: md.PriceChangePercentage24h,
		MarketCap:                md.MarketCap[vsCurrency],
		TotalVolume:              md.TotalVolume[vsCurrency],
		AllTimeHigh:              md.ATH[vsCurrency],
		CirculatingSupply:        md.CirculatingSupply,
	}, nil
}

// Chart returns the USD price history of a coin for the last days.
// GET /coins/bitcoin/market_chart?vs_currency=usd&days=30
func (c *client) Chart(ctx context.Context, id string, days int) ([]model.PricePoint, error) {
	if days < 1 {
		days = DefaultDays
	}

	query := url.Values{}
	query.Set("vs_currency", vsCurrency)
	query.Set("days", strconv.Itoa(days))

	r := chartResponse{}
	if err := c.rest.Get(ctx, "coins/"+url.PathEscape(id)+"/market_chart", query, &r); err != nil {
		return nil, fmt.Errorf("unable to fetch chart of %s: %w", id, err)
	}

	points := make([]model.PricePoint, 0, len(r.Prices))
	for _, p := range r.Prices {
		points = append(points, model.PricePoint{
			Timestamp: time.UnixMilli(int64(p[0])).UTC(),
			Price:     p[1],
		})
	}

	return points, nil
}

// Overview implements service.Market.
// Details and chart are fetched concurrently.
func (c *client) Overview(ctx context.Context, id string, days int) (model.CoinOverview, error) {
	var overview model.CoinOverview

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		details, err := c.Details(gctx, id)
		overview.Details = details
		return err
	})

	g.Go(func() error {
		chart, err := c.Chart(gctx, id, days)
		overview.Chart = chart
		return err
	})

	if err := g.Wait(); err != nil {
		return model.CoinOverview{}, err
	}

	return overview, nil
}

// Trending implements service.Market.
// GET /search/trending
func (c *client) Trending(ctx context.Context) ([]model.TrendingCoin, error) {
	r := trendingResponse{}
	if err := c.rest.Get(ctx, "search/trending", nil, &r); err != nil {
		return nil, fmt.Errorf("unable to fetch trending coins: %w", err)
	}

	coins := make([]model.TrendingCoin, 0, len(r.Coins))
	for _, entry := range r.Coins {
		coins = append(coins, entry.Item)
	}

	return coins, nil
}

// Price implements service.PriceSource.
// GET /simple/price?ids=bitcoin&vs_currencies=usd
func (c *client) Price(ctx context.Context, id string) (float64, error) {
	query := url.Values{}
	query.Set("ids", id)
	query.Set("vs_currencies", vsCurrency)

	r := map[string]map[string]float64{}
	if err := c.rest.Get(ctx, "simple/price", query, &r); err != nil {
		return 0, fmt.Errorf("unable to fetch price of %s: %w", id, err)
	}

	price, ok := r[id][vsCurrency]
	if !ok || price <= 0 {
		return 0, fmt.Errorf("%w: %s", service.ErrPriceNotFound, id)
	}

	log.Debug().Str("id", id).Float64("price", price).Msg("fetched asset price")

	return price, nil
}

// FilterMarkets keeps the coins whose name or symbol contains term, ignoring case.
func FilterMarkets(coins []model.CoinMarket, term string) []model.CoinMarket {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return coins
	}

	filtered := make([]model.CoinMarket, 0, len(coins))
	for _, coin := range coins {
		if strings.Contains(strings.ToLower(coin.Name), term) || strings.Contains(strings.ToLower(coin.Symbol), term) {
			filtered = append(filtered, coin)
		}
	}

	return filtered
}
