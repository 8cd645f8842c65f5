package provider

import "errors"

// Sentinel kinds for provider errors.
var (
	ErrRateLimited = errors.New("upstream rate limited")
	ErrAPIError    = errors.New("upstream api error")
	ErrHTTP        = errors.New("upstream request failed")
	ErrDecode      = errors.New("upstream response decode failed")
)
