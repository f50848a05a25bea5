// Package entity defines the domain models for the company feature.
package entity

import "time"

// CompanyInfo is the cached company profile for one symbol. One row per
// symbol, fully replaced on refresh.
type CompanyInfo struct {
	Symbol       string `gorm:"primaryKey;size:32"`
	CompanyName  string `gorm:"size:255"`
	Exchange     string `gorm:"size:64"`
	Industry     string `gorm:"size:128"`
	Website      string `gorm:"size:512"`
	Description  string `gorm:"type:text"`
	CEO          string `gorm:"size:128"`
	SecurityName string `gorm:"size:255"`
	Sector       string `gorm:"size:128"`
	Employees    int
	Address      string `gorm:"size:512"`
	State        string `gorm:"size:64"`
	City         string `gorm:"size:128"`
	Zip          string `gorm:"size:32"`
	Country      string `gorm:"size:64"`

	FetchTimestamp time.Time `gorm:"not null;index"`
}

// TableName maps CompanyInfo to the company_infos table.
func (CompanyInfo) TableName() string {
	return "company_infos"
}
