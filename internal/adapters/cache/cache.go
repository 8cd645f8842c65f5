// Package cache provides the SQLite-backed TTL cache for upstream API
// responses. Entries are keyed by (function, symbol, params hash) and
// stay addressable after expiry so rate-limited fetches can fall back
// to stale data.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // sqlite driver

	"github.com/okian/vendorboard/pkg/metrics"
)

const schema = `
CREATE TABLE IF NOT EXISTS api_cache (
	function    TEXT,
	symbol      TEXT,
	params_hash TEXT,
	response    TEXT,
	timestamp   INTEGER,
	PRIMARY KEY (function, symbol, params_hash)
)`

// defaultTTL matches the upstream data cadence: fundamentals move daily.
const defaultTTL = 24 * time.Hour

// Entry is a cached response body with its storage time.
type Entry struct {
	Body     []byte
	StoredAt time.Time
}

// Cache is a TTL response cache backed by a SQLite file.
type Cache struct {
	db          *sql.DB
	defaultTTL  time.Duration
	functionTTL map[string]time.Duration
	now         func() time.Time
}

// Open creates (or reuses) the cache database at path.
func Open(ctx context.Context, path string, opts ...Option) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	c := &Cache{
		db:          db,
		defaultTTL:  defaultTTL,
		functionTTL: make(map[string]time.Duration),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get returns the cached entry for the key, fresh or not.
// Returns ErrMiss when no entry exists.
func (c *Cache) Get(ctx context.Context, function, symbol string, params map[string]string) (Entry, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT response, timestamp FROM api_cache WHERE function=? AND symbol=? AND params_hash=?`,
		function, symbol, paramsHash(params),
	)
	var body string
	var ts int64
	if err := row.Scan(&body, &ts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrMiss
		}
		metrics.RecordCacheError()
		return Entry{}, fmt.Errorf("%w: %w", ErrRead, err)
	}
	return Entry{Body: []byte(body), StoredAt: time.Unix(ts, 0)}, nil
}

// Set upserts the response body for the key.
func (c *Cache) Set(ctx context.Context, function, symbol string, params map[string]string, body []byte) error {
	_, err := c.db.ExecContext(ctx,
		`REPLACE INTO api_cache (function, symbol, params_hash, response, timestamp) VALUES (?, ?, ?, ?, ?)`,
		function, symbol, paramsHash(params), string(body), c.now().Unix(),
	)
	if err != nil {
		metrics.RecordCacheError()
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// Fresh reports whether the entry is still within the function's TTL.
func (c *Cache) Fresh(function string, e Entry) bool {
	ttl, ok := c.functionTTL[function]
	if !ok {
		ttl = c.defaultTTL
	}
	return c.now().Sub(e.StoredAt) < ttl
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close cache: %w", err)
	}
	return nil
}

// paramsHash flattens extra query params into a stable key segment.
func paramsHash(params map[string]string) string {
	if len(params) == 0 {
		return "_"
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	return strings.Join(parts, "|")
}
