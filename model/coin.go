package model

import "time"

// CoinMarket is a single row of the market listing.
type CoinMarket struct {
	ID                       string  `json:"id"`
	Symbol                   string  `json:"symbol"`
	Name                     string  `json:"name"`
	Image                    string  `json:"image"`
	CurrentPrice             float64 `json:"current_price"`
	MarketCap                float64 `json:"market_cap"`
	MarketCapRank            int     `json:"market_cap_rank"`
	TotalVolume              float64 `json:"total_volume"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
}

// MarketsQuery narrows the market listing.
type MarketsQuery struct {
	IDs     []string // only these coin ids, all when empty
	Page    int      // 1-based page
	PerPage int      // page size
}

// CoinDetails holds the market data shown on a coin page.
type CoinDetails struct {
	ID                       string  `json:"id"`
	Symbol                   string  `json:"symbol"`
	Name                     string  `json:"name"`
	Description              string  `json:"description"`
	Image                    string  `json:"image"`
	CurrentPrice             float64 `json:"current_price"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
	MarketCap                float64 `json:"market_cap"`
	TotalVolume              float64 `json:"total_volume"`
	AllTimeHigh              float64 `json:"ath"`
	CirculatingSupply        float64 `json:"circulating_supply"`
}

// PricePoint is one sample of a price history chart.
type PricePoint struct {
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// CoinOverview bundles details with price history.
type CoinOverview struct {
	Details CoinDetails  `json:"details"`
	Chart   []PricePoint `json:"chart"`
}

// TrendingCoin is an entry of the trending feed.
type TrendingCoin struct {
	ID            string  `json:"id"`
	CoinID        int     `json:"coin_id"`
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	MarketCapRank int     `json:"market_cap_rank"`
	Thumb         string  `json:"thumb"`
	Score         int     `json:"score"`
	PriceBTC      float64 `json:"price_btc"`
}

// NewsItem is a single article of the news feed.
type NewsItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"image_url"`
	Body        string    `json:"body"`
	Source      string    `json:"source"`
	Categories  string    `json:"categories"`
	PublishedOn time.Time `json:"published_on"`
}
