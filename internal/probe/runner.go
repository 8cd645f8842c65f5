package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/vendorboard/pkg/logger"
)

// tableResponse mirrors the grid shape served by the table endpoints.
type tableResponse struct {
	Columns []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Hook string `json:"hook"`
	} `json:"columns"`
	Rows []map[string]any `json:"rows"`
}

// barResponse mirrors one intraday bar.
type barResponse struct {
	TS    time.Time `json:"ts"`
	Close string    `json:"close"`
}

// Run executes the complete smoke check.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		RunID:     uuid.New().String(),
		StartTime: time.Now(),
	}
	log := logger.Get().Named("probe")

	log.Info(ctx, "starting vendorboard smoke probe",
		logger.String("runID", stats.RunID),
		logger.String("baseURL", config.BaseURL),
		logger.String("timeout", config.Timeout.String()))

	client := newHTTPClient(config.Timeout, stats.RunID)

	checks := []struct {
		name string
		fn   func(context.Context, *httpClient, *Config) error
	}{
		{"health", checkHealth},
		{"stats", checkStats},
		{"overview table", checkOverviewTable},
		{"vendor table and quotes", checkVendorsAndQuotes},
		{"manual refresh", checkRefresh},
	}

	for _, check := range checks {
		stats.ChecksRun++
		if err := check.fn(ctx, client, config); err != nil {
			stats.ChecksFailed++
			log.Error(ctx, "probe check failed",
				logger.String("check", check.name), logger.Error(err))
			continue
		}
		if config.Verbose {
			log.Info(ctx, "probe check passed", logger.String("check", check.name))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	log.Info(ctx, "probe finished",
		logger.String("runID", stats.RunID),
		logger.Int("checks", stats.ChecksRun),
		logger.Int("failed", stats.ChecksFailed),
		logger.Duration("duration", stats.Duration))

	if stats.ChecksFailed > 0 {
		return fmt.Errorf("%w: %d of %d checks failed", ErrProbeFailed, stats.ChecksFailed, stats.ChecksRun)
	}
	return nil
}

// checkHealth verifies the metrics endpoint answers.
func checkHealth(ctx context.Context, client *httpClient, config *Config) error {
	body, status, err := client.get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("unexpected status %d", status)
	}
	if !strings.Contains(string(body), "vendorboard") {
		return fmt.Errorf("metrics payload missing service families")
	}
	return nil
}

// checkStats verifies the stats endpoint reports a running pipeline.
func checkStats(ctx context.Context, client *httpClient, config *Config) error {
	body, status, err := client.get(ctx, config.BaseURL+"/stats")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("unexpected status %d", status)
	}
	var stats map[string]any
	if err := json.Unmarshal(body, &stats); err != nil {
		return fmt.Errorf("failed to decode stats: %w", err)
	}
	if started, ok := stats["started"].(bool); !ok || !started {
		return fmt.Errorf("service reports not started")
	}
	return nil
}

// checkOverviewTable verifies the formatted grid honors its column
// hooks: currency cells like "$1,000", percent cells like "15.3%",
// missing data as "N/A".
func checkOverviewTable(ctx context.Context, client *httpClient, config *Config) error {
	body, status, err := client.get(ctx, config.BaseURL+"/api/table/overview")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("unexpected status %d", status)
	}
	var table tableResponse
	if err := json.Unmarshal(body, &table); err != nil {
		return fmt.Errorf("failed to decode table: %w", err)
	}
	if len(table.Rows) == 0 {
		return fmt.Errorf("overview table has no rows yet")
	}
	for _, col := range table.Columns {
		for _, row := range table.Rows {
			cell, ok := row[col.ID].(string)
			if !ok || cell == "N/A" {
				continue
			}
			switch col.Hook {
			case "usd":
				if !strings.HasPrefix(cell, "$") && !strings.HasPrefix(cell, "-$") {
					return fmt.Errorf("column %s cell %q not currency formatted", col.ID, cell)
				}
			case "pct":
				if !strings.HasSuffix(cell, "%") {
					return fmt.Errorf("column %s cell %q not percent formatted", col.ID, cell)
				}
			}
		}
	}
	return nil
}

// checkVendorsAndQuotes walks from the vendor grid to one symbol's
// intraday series.
func checkVendorsAndQuotes(ctx context.Context, client *httpClient, config *Config) error {
	body, status, err := client.get(ctx, config.BaseURL+"/api/table/vendors")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("unexpected status %d", status)
	}
	var table tableResponse
	if err := json.Unmarshal(body, &table); err != nil {
		return fmt.Errorf("failed to decode table: %w", err)
	}
	if len(table.Rows) == 0 {
		return fmt.Errorf("vendor table has no rows yet")
	}
	symbol, ok := table.Rows[0]["Symbol"].(string)
	if !ok || symbol == "" {
		return fmt.Errorf("vendor row missing symbol")
	}

	body, status, err = client.get(ctx, config.BaseURL+"/api/quotes?symbol="+url.QueryEscape(symbol))
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("quotes for %s: unexpected status %d", symbol, status)
	}
	var bars []barResponse
	if err := json.Unmarshal(body, &bars); err != nil {
		return fmt.Errorf("failed to decode bars: %w", err)
	}
	if len(bars) == 0 {
		return fmt.Errorf("no bars for %s", symbol)
	}
	return nil
}

// checkRefresh verifies a manual sweep is accepted.
func checkRefresh(ctx context.Context, client *httpClient, config *Config) error {
	_, status, err := client.post(ctx, config.BaseURL+"/api/refresh")
	if err != nil {
		return err
	}
	if status != http.StatusAccepted {
		return fmt.Errorf("unexpected status %d", status)
	}
	return nil
}
