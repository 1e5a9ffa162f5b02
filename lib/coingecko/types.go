package coingecko

// Market is one entry of the /coins/markets response. Every numeric field
// is nullable upstream, so everything except the identifiers is a pointer.
type Market struct {
	ID                       string     `json:"id"`
	Symbol                   string     `json:"symbol"`
	Name                     string     `json:"name"`
	Image                    string     `json:"image"`
	CurrentPrice             *float64   `json:"current_price"`
	MarketCap                *float64   `json:"market_cap"`
	MarketCapRank            *int       `json:"market_cap_rank"`
	TotalVolume              *float64   `json:"total_volume"`
	High24h                  *float64   `json:"high_24h"`
	Low24h                   *float64   `json:"low_24h"`
	PriceChange24h           *float64   `json:"price_change_24h"`
	PriceChangePercentage24h *float64   `json:"price_change_percentage_24h"`
	CirculatingSupply        *float64   `json:"circulating_supply"`
	SparklineIn7d            *Sparkline `json:"sparkline_in_7d,omitempty"`
	LastUpdated              string     `json:"last_updated,omitempty"`
}

type Sparkline struct {
	Price []float64 `json:"price"`
}

// CoinDetail is the subset of the /coins/{id} response the service reads.
type CoinDetail struct {
	ID          string            `json:"id"`
	Symbol      string            `json:"symbol"`
	Name        string            `json:"name"`
	Description map[string]string `json:"description"`
	Image       CoinImage         `json:"image"`
	MarketData  *CoinMarketData   `json:"market_data"`
}

type CoinImage struct {
	Thumb string `json:"thumb"`
	Small string `json:"small"`
	Large string `json:"large"`
}

type CoinMarketData struct {
	CurrentPrice             map[string]float64 `json:"current_price"`
	MarketCap                map[string]float64 `json:"market_cap"`
	PriceChange24h           *float64           `json:"price_change_24h"`
	PriceChangePercentage24h *float64           `json:"price_change_percentage_24h"`
}

// ChartPoint is a [timestamp_ms, value] pair as serialized by the
// market_chart endpoint.
type ChartPoint [2]float64

// ChartData holds the three parallel series of a market_chart response.
// The slices are kept non-nil so empty series serialize as [].
type ChartData struct {
	Prices       []ChartPoint `json:"prices"`
	MarketCaps   []ChartPoint `json:"market_caps"`
	TotalVolumes []ChartPoint `json:"total_volumes"`
}
