// Package iex provides a client for the IEX Cloud market data API.
package iex

import (
	"os"
	"time"
)

// Config holds configuration for the IEX Cloud API client.
type Config struct {
	Token   string        // publishable token attached to every request
	BaseURL string        // base URL for the API (e.g., "https://cloud.iexapis.com/stable")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads IEX Cloud configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("IEX_BASE_URL")
	if base == "" {
		base = "https://cloud.iexapis.com/stable"
	}
	return Config{
		Token:   os.Getenv("IEX_PUBLISHABLE_TOKEN"),
		BaseURL: base,
		Timeout: 10 * time.Second,
	}
}
