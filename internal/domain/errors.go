package domain

import "errors"

var (
	// ErrInvalidRequest signals malformed search parameters.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnknownCategory signals a category or search type outside the closed set.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrStoreUnavailable signals that the catalog store cannot be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)
