package tripsearch

import "github.com/kailas-cloud/tripsearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidRequest   = domain.ErrInvalidRequest
	ErrUnknownCategory  = domain.ErrUnknownCategory
	ErrStoreUnavailable = domain.ErrStoreUnavailable
)
