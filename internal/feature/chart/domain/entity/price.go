// Package entity defines the domain models for the chart feature.
package entity

import "time"

// Price is one daily bar of a symbol's historical series, keyed by
// (symbol, date). Synthetic bars fill calendar days without trade data
// so a completed range holds exactly one row per calendar day.
type Price struct {
	Symbol string    // instrument symbol
	Date   time.Time // civil date, UTC midnight

	Close         float64
	Volume        int64
	Change        float64
	ChangePercent float64

	// NoDataDay marks a synthetic placeholder bar for a calendar day
	// with no real trade data (weekend, holiday).
	NoDataDay bool

	// EarliestAvailable marks the first real bar when the provider's
	// series starts after the requested window's first date.
	EarliestAvailable bool

	FetchTimestamp time.Time
}
