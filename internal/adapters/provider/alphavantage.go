// Package provider implements the market-data API client. Responses
// flow through the TTL cache; when the upstream rejects a request as
// rate limited, a stale cached response is served instead of failing
// the refresh.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/vendorboard/internal/adapters/cache"
	"github.com/okian/vendorboard/internal/domain/model"
	"github.com/okian/vendorboard/pkg/logger"
	"github.com/okian/vendorboard/pkg/metrics"
)

// Upstream API function names.
const (
	FuncOverview        = "OVERVIEW"
	FuncIncomeStatement = "INCOME_STATEMENT"
	FuncIntraday        = "TIME_SERIES_INTRADAY"
)

// Default client configuration.
const (
	defaultMaxRetries    = 3
	defaultBackoffBase   = time.Second
	defaultTimeout       = 30 * time.Second
	defaultRatePerMinute = 5
	defaultInterval      = "5min"
)

// Client fetches fundamental and intraday data for vendor symbols.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	cache       *cache.Cache
	limiter     *rate.Limiter
	maxRetries  int
	backoffBase time.Duration
	log         logger.Logger
}

// New creates a market-data client. An empty apiKey switches the client
// to the built-in mock dataset so the dashboard works offline.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		maxRetries:  defaultMaxRetries,
		backoffBase: defaultBackoffBase,
		limiter:     rate.NewLimiter(rate.Every(time.Minute/defaultRatePerMinute), defaultRatePerMinute),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Get().Named("provider")
	}
	return c
}

// Overview fetches the company overview for symbol.
func (c *Client) Overview(ctx context.Context, symbol string) (model.CompanyOverview, error) {
	body, err := c.fetch(ctx, FuncOverview, model.NormalizeSymbol(symbol), nil)
	if err != nil {
		return model.CompanyOverview{}, err
	}
	return model.ParseOverview(body)
}

// IncomeStatement fetches the income statement for symbol.
func (c *Client) IncomeStatement(ctx context.Context, symbol string) (model.IncomeStatement, error) {
	body, err := c.fetch(ctx, FuncIncomeStatement, model.NormalizeSymbol(symbol), nil)
	if err != nil {
		return model.IncomeStatement{}, err
	}
	return model.ParseIncomeStatement(body)
}

// Intraday fetches the latest intraday bars for symbol, newest first.
func (c *Client) Intraday(ctx context.Context, symbol string) ([]model.Bar, error) {
	params := map[string]string{"interval": defaultInterval}
	body, err := c.fetch(ctx, FuncIntraday, model.NormalizeSymbol(symbol), params)
	if err != nil {
		return nil, err
	}
	return model.ParseIntraday(body)
}

// fetch resolves one API call through cache, mock fallback, pacing and
// retry. The returned body is raw JSON for the model parsers.
func (c *Client) fetch(ctx context.Context, function, symbol string, params map[string]string) ([]byte, error) {
	if c.apiKey == "" {
		return mockResponse(function, symbol)
	}

	var stale *cache.Entry
	if c.cache != nil {
		entry, err := c.cache.Get(ctx, function, symbol, params)
		switch {
		case err == nil && c.cache.Fresh(function, entry):
			metrics.RecordCacheHit()
			return entry.Body, nil
		case err == nil:
			stale = &entry
			metrics.RecordCacheMiss()
		case errors.Is(err, cache.ErrMiss):
			metrics.RecordCacheMiss()
		default:
			// A broken cache must not block refresh.
			c.log.Warn(ctx, "cache read failed", logger.Error(err))
		}
	}

	body, err := c.request(ctx, function, symbol, params)
	if err != nil {
		// Serve stale data while the upstream is rate limiting us.
		if stale != nil && errors.Is(err, ErrRateLimited) {
			metrics.RecordCacheStaleServed()
			c.log.Warn(ctx, "serving stale cache entry",
				logger.String("function", function),
				logger.String("symbol", symbol))
			return stale.Body, nil
		}
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, function, symbol, params, body); err != nil {
			c.log.Warn(ctx, "cache write failed", logger.Error(err))
		}
	}
	return body, nil
}

// request performs the HTTP call with pacing and exponential backoff on
// HTTP 429 and 5xx (1s, 2s, 4s by default).
func (c *Client) request(ctx context.Context, function, symbol string, params map[string]string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTTP, err)
	}

	metrics.RecordProviderRequest(function)
	start := time.Now()
	defer func() {
		metrics.RecordProviderLatency(float64(time.Since(start).Milliseconds()))
	}()

	q := url.Values{}
	q.Set("function", function)
	q.Set("symbol", symbol)
	q.Set("apikey", c.apiKey)
	for k, v := range params {
		q.Set(k, v)
	}
	reqURL := c.baseURL + "?" + q.Encode()

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.backoffBase << (attempt - 1)
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %w", ErrHTTP, ctx.Err())
			case <-time.After(delay):
			}
		}

		body, retryable, err := c.do(ctx, reqURL)
		if err == nil {
			return c.inspect(function, body)
		}
		lastErr = err
		if !retryable {
			break
		}
		c.log.Warn(ctx, "retrying upstream request",
			logger.String("function", function),
			logger.String("symbol", symbol),
			logger.Int("attempt", attempt+1),
			logger.Error(err))
	}

	metrics.RecordProviderError(function, "http")
	return nil, lastErr
}

// do performs one HTTP round trip. The second return reports whether
// the failure is retryable (429 or 5xx).
func (c *Client) do(ctx context.Context, reqURL string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrHTTP, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %w", ErrHTTP, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %w", ErrHTTP, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, false, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return nil, true, fmt.Errorf("%w: status %d", ErrHTTP, resp.StatusCode)
	default:
		return nil, false, fmt.Errorf("%w: status %d", ErrHTTP, resp.StatusCode)
	}
}

// inspect rejects informational payloads the upstream returns with HTTP
// 200: rate-limit notes and error messages are not data.
func (c *Client) inspect(function string, body []byte) ([]byte, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		metrics.RecordProviderError(function, "decode")
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	for _, key := range []string{"Information", "Note"} {
		if msg, ok := payload[key]; ok {
			metrics.RecordProviderRateLimited()
			metrics.RecordProviderError(function, "rate_limited")
			return nil, fmt.Errorf("%w: %s", ErrRateLimited, trimQuotes(msg))
		}
	}
	if msg, ok := payload["Error Message"]; ok {
		metrics.RecordProviderError(function, "api_error")
		return nil, fmt.Errorf("%w: %s", ErrAPIError, trimQuotes(msg))
	}
	return body, nil
}

func trimQuotes(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return string(raw)
	}
	return s
}
