package cache

import "time"

// Option applies a configuration option to the Cache.
type Option func(*Cache)

// WithDefaultTTL sets the TTL used for functions without an override.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.defaultTTL = ttl
		}
	}
}

// WithFunctionTTL overrides the TTL for one API function.
func WithFunctionTTL(function string, ttl time.Duration) Option {
	return func(c *Cache) {
		if function != "" && ttl > 0 {
			c.functionTTL[function] = ttl
		}
	}
}

// WithClock injects a time source, used by tests to age entries.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}
