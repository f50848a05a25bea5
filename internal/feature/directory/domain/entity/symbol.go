// Package entity defines the domain models for the directory feature.
package entity

import "time"

// Symbol is one instrument directory entry. The directory is replaced
// wholesale on refresh; watchlist membership lives in the separate
// tracked_symbols table so a refresh cannot reset it.
type Symbol struct {
	Symbol      string `gorm:"primaryKey;size:32"`
	Name        string `gorm:"size:255;not null"`
	ListingDate time.Time
	Type        string `gorm:"size:32"`
	Region      string `gorm:"size:16"`
	Currency    string `gorm:"size:16"`

	FetchTimestamp time.Time `gorm:"not null;index"`
}

// TableName maps Symbol to the symbols table.
func (Symbol) TableName() string {
	return "symbols"
}

// TrackedSymbol is one watchlist membership row.
type TrackedSymbol struct {
	Symbol string `gorm:"primaryKey;size:32"`
}

// TableName maps TrackedSymbol to the tracked_symbols table.
func (TrackedSymbol) TableName() string {
	return "tracked_symbols"
}
