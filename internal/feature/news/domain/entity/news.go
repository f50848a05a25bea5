// Package entity defines the domain models for the news feature.
package entity

import (
	"strings"
	"time"
)

// News is one news item. Rows are keyed by an auto-assigned id and the
// whole set is replaced on refresh, never merged per item.
type News struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	Date           int64     `gorm:"not null"` // publication time, epoch millis
	Headline       string    `gorm:"size:512;not null"`
	Source         string    `gorm:"size:128"`
	URL            string    `gorm:"size:1024"`
	Summary        string    `gorm:"type:text"`
	Symbols        string    `gorm:"size:512"` // comma-joined related symbols
	ImageURL       string    `gorm:"size:1024"`
	HasPaywall     bool      `gorm:"not null;default:false"`
	FetchTimestamp time.Time `gorm:"not null;index"`
}

// TableName maps News to the news table.
func (News) TableName() string {
	return "news"
}

// RelatedSymbols splits the comma-joined symbol list.
func (n News) RelatedSymbols() []string {
	if n.Symbols == "" {
		return nil
	}
	return strings.Split(n.Symbols, ",")
}
