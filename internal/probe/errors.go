package probe

import "errors"

// Sentinel kinds for probe errors.
var (
	ErrProbeFailed = errors.New("probe checks failed")
)
