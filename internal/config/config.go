// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":7860".
	Addr string `koanf:"addr"`

	// Symbols lists the vendor tickers tracked by the dashboard.
	Symbols []string `koanf:"symbols"`

	// APIKey authenticates against the market-data API. When empty the
	// service falls back to the built-in mock dataset.
	APIKey string `koanf:"api_key"`

	// BaseURL is the market-data API query endpoint.
	BaseURL string `koanf:"base_url"`

	// CachePath locates the SQLite response cache file.
	CachePath string `koanf:"cache_path"`

	// CacheTTLHours bounds how long cached API responses stay fresh.
	CacheTTLHours int `koanf:"cache_ttl_hours"`

	// RefreshIntervalSec sets how often all symbols are re-fetched.
	RefreshIntervalSec int `koanf:"refresh_interval_sec"`

	// RequestTimeoutSec bounds a single upstream API request.
	RequestTimeoutSec int `koanf:"request_timeout_sec"`

	// MaxRetries sets the number of retry attempts for upstream requests.
	MaxRetries int `koanf:"max_retries"`

	// RatePerMinute caps outgoing upstream requests per minute.
	RatePerMinute int `koanf:"rate_per_minute"`

	// WorkerCount sets the number of refresh workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory refresh job queue.
	QueueSize int `koanf:"queue_size"`
}

// New returns a Config populated with defaults. The defaults mirror the
// free tier of the upstream API: 24h response TTL and a small request
// budget per minute.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:           "info",
		Addr:               ":7860",
		Symbols:            []string{"TEL", "ST", "DD", "CE", "LYB"},
		APIKey:             "",
		BaseURL:            "https://www.alphavantage.co/query",
		CachePath:          "/tmp/vendorboard/cache.db",
		CacheTTLHours:      24,
		RefreshIntervalSec: 3600,
		RequestTimeoutSec:  30,
		MaxRetries:         3,
		RatePerMinute:      5,
		WorkerCount:        min(runtime.NumCPU(), 4),
		QueueSize:          64,
	}
	return c
}
