package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound       = errors.New("not found")
	ErrMalformedEntry = errors.New("malformed phrase entry")
	ErrInvalidConfig  = errors.New("invalid configuration")
)
