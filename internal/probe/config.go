// Package probe runs an end-to-end smoke check against a live
// vendorboard instance.
package probe

import "time"

// Default configuration constants.
const (
	DefaultBaseURL = "http://localhost:7860"
	DefaultTimeout = 10 * time.Second
)

// Config holds probe settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Verbose bool
}

// Stats tracks a probe run.
type Stats struct {
	RunID        string
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	ChecksRun    int
	ChecksFailed int
}
