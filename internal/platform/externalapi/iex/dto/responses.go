// Package dto defines data transfer objects for IEX Cloud API responses.
package dto

// QuoteResponse represents a single quote object from the quote,
// batch and most-active endpoints.
type QuoteResponse struct {
	Symbol                string  `json:"symbol"`
	CompanyName           string  `json:"companyName"`
	PrimaryExchange       string  `json:"primaryExchange"`
	Open                  float64 `json:"open"`
	Close                 float64 `json:"close"`
	High                  float64 `json:"high"`
	Low                   float64 `json:"low"`
	LatestPrice           float64 `json:"latestPrice"`
	LatestSource          string  `json:"latestSource"`
	LatestUpdate          int64   `json:"latestUpdate"`
	LatestVolume          int64   `json:"latestVolume"`
	ExtendedPrice         float64 `json:"extendedPrice"`
	ExtendedChange        float64 `json:"extendedChange"`
	ExtendedChangePercent float64 `json:"extendedChangePercent"`
	PreviousClose         float64 `json:"previousClose"`
	PreviousVolume        int64   `json:"previousVolume"`
	Change                float64 `json:"change"`
	ChangePercent         float64 `json:"changePercent"`
	Volume                int64   `json:"volume"`
	AvgTotalVolume        int64   `json:"avgTotalVolume"`
	MarketCap             int64   `json:"marketCap"`
	PERatio               float64 `json:"peRatio"`
	Week52High            float64 `json:"week52High"`
	Week52Low             float64 `json:"week52Low"`
	YTDChange             float64 `json:"ytdChange"`
	IsUSMarketOpen        bool    `json:"isUSMarketOpen"`
}

// BatchQuoteEntry is one value of the batch endpoint's per-symbol map.
// The batch endpoint nests each quote one level deeper than the single
// quote endpoint, so the client unwraps it.
type BatchQuoteEntry struct {
	Quote QuoteResponse `json:"quote"`
}

// BatchNewsEntry is one value of the batch endpoint's per-symbol map
// when news is requested.
type BatchNewsEntry struct {
	News []NewsResponse `json:"news"`
}

// PriceResponse represents one historical daily bar. Bars exist only
// for actual trading days.
type PriceResponse struct {
	Date          string  `json:"date"` // "2006-01-02"
	Close         float64 `json:"close"`
	Volume        int64   `json:"volume"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// NewsResponse represents one news item.
type NewsResponse struct {
	Datetime   int64  `json:"datetime"` // epoch millis
	Headline   string `json:"headline"`
	Source     string `json:"source"`
	URL        string `json:"url"`
	Summary    string `json:"summary"`
	Related    string `json:"related"` // comma-joined related symbols
	Image      string `json:"image"`
	HasPaywall bool   `json:"hasPaywall"`
}

// SymbolResponse represents one directory entry from the reference data
// endpoint.
type SymbolResponse struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Date     string `json:"date"` // listing date, "2006-01-02"
	Type     string `json:"type"`
	Region   string `json:"region"`
	Currency string `json:"currency"`
}

// CompanyResponse represents the company profile endpoint payload.
type CompanyResponse struct {
	Symbol       string `json:"symbol"`
	CompanyName  string `json:"companyName"`
	Exchange     string `json:"exchange"`
	Industry     string `json:"industry"`
	Website      string `json:"website"`
	Description  string `json:"description"`
	CEO          string `json:"CEO"`
	SecurityName string `json:"securityName"`
	Sector       string `json:"sector"`
	Employees    int    `json:"employees"`
	Address      string `json:"address"`
	Address2     string `json:"address2"`
	State        string `json:"state"`
	City         string `json:"city"`
	Zip          string `json:"zip"`
	Country      string `json:"country"`
}
