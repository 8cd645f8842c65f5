package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// httpClient wraps http.Client and tags every request with the probe
// run ID so probe traffic is traceable in server logs.
type httpClient struct {
	client *http.Client
	runID  string
}

func newHTTPClient(timeout time.Duration, runID string) *httpClient {
	return &httpClient{
		client: &http.Client{Timeout: timeout},
		runID:  runID,
	}
}

func (c *httpClient) do(ctx context.Context, method, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Request-ID", c.runID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

func (c *httpClient) get(ctx context.Context, url string) ([]byte, int, error) {
	return c.do(ctx, http.MethodGet, url)
}

func (c *httpClient) post(ctx context.Context, url string) ([]byte, int, error) {
	return c.do(ctx, http.MethodPost, url)
}
