package app

import (
	"net/http"
	"time"

	"github.com/okian/vendorboard/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSymbols sets the tracked vendor symbols.
func WithSymbols(symbols []string) Option {
	return func(s *Service) {
		if len(symbols) > 0 {
			s.symbols = append([]string(nil), symbols...)
		}
	}
}

// WithAPIKey sets the upstream API key. An empty key keeps the
// built-in mock dataset.
func WithAPIKey(key string) Option {
	return func(s *Service) {
		s.apiKey = key
	}
}

// WithBaseURL sets the upstream API endpoint.
func WithBaseURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.baseURL = url
		}
	}
}

// WithCachePath sets the SQLite cache location.
func WithCachePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.cachePath = path
		}
	}
}

// WithCacheTTL sets how long cached upstream responses stay fresh.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithRefreshInterval sets the time between background refresh sweeps.
func WithRefreshInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.refreshInterval = interval
		}
	}
}

// WithRequestTimeout sets the per-request timeout for upstream calls.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.requestTimeout = timeout
		}
	}
}

// WithMaxRetries sets the retry budget for upstream calls.
func WithMaxRetries(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// WithRatePerMinute caps upstream requests per minute.
func WithRatePerMinute(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.ratePerMinute = n
		}
	}
}

// WithWorkerCount sets the number of refresh workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the refresh queue capacity.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
