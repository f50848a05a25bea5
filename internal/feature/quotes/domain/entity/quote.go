// Package entity defines the domain models for the quotes feature.
package entity

import "time"

// Quote represents the latest cached quote for one instrument symbol.
// There is at most one row per symbol; a refresh fully replaces the
// previous row.
type Quote struct {
	Symbol          string `gorm:"primaryKey;size:32"`
	CompanyName     string `gorm:"size:255"`
	PrimaryExchange string `gorm:"size:64"`

	OpenPrice  float64
	ClosePrice float64
	HighPrice  float64
	LowPrice   float64

	LatestPrice  float64
	LatestSource string `gorm:"size:32"`
	LatestTime   int64
	LatestVolume int64

	ExtendedPrice         float64
	ExtendedChange        float64
	ExtendedChangePercent float64

	PreviousClose  float64
	PreviousVolume int64

	Change        float64
	ChangePercent float64
	Volume        int64

	AvgTotalVolume int64
	MarketCap      int64
	PERatio        float64
	Week52High     float64
	Week52Low      float64
	YTDChange      float64
	IsUSMarketOpen bool

	// IsTopActive marks the quote as part of today's most-active set.
	IsTopActive bool `gorm:"not null;default:false"`

	FetchTimestamp time.Time `gorm:"not null;index"`
}

// TableName maps Quote to the quotes table.
func (Quote) TableName() string {
	return "quotes"
}

// MostActiveRanking is the singleton cache row holding the ordered
// most-active symbol list and the timestamp of its last refresh. Only
// its own freshness window is checked against it; the quotes it points
// at carry their own FetchTimestamp.
type MostActiveRanking struct {
	ID             int       `gorm:"primaryKey"`
	Symbols        string    `gorm:"not null"` // comma-joined, ordered by activity
	FetchTimestamp time.Time `gorm:"not null"`
}

// TableName maps MostActiveRanking to its singleton table.
func (MostActiveRanking) TableName() string {
	return "most_active_ranking"
}
