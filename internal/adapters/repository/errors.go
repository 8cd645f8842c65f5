package repository

import "errors"

// Sentinel kinds for snapshot errors.
var (
	ErrNotFound = errors.New("symbol not found")
)
