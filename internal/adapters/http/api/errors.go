package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrMissingSymbol = errors.New("missing symbol parameter")
	ErrNotRunning    = errors.New("refresh pipeline not running")
)
