package provider

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/vendorboard/internal/adapters/cache"
	"github.com/okian/vendorboard/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithCache attaches the TTL response cache.
func WithCache(store *cache.Cache) Option {
	return func(c *Client) {
		c.cache = store
	}
}

// WithMaxRetries sets the number of attempts for retryable failures.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxRetries = n
		}
	}
}

// WithBackoffBase sets the first retry delay; later delays double it.
func WithBackoffBase(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.backoffBase = d
		}
	}
}

// WithRatePerMinute caps outgoing requests per minute.
func WithRatePerMinute(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), n)
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}
