package search

import (
	"context"

	"github.com/kailas-cloud/tripsearch/internal/domain/listing"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/request"
)

// Repository defines the catalog contract for search operations.
type Repository interface {
	// Candidates returns published listings of a category narrowed by the
	// filters that apply to it, capped per category.
	Candidates(ctx context.Context, cat listing.Category, f request.Filters) ([]listing.Record, error)

	// Matching returns up to limit published listings of a category whose
	// title or location contains substr, case-insensitively.
	Matching(ctx context.Context, cat listing.Category, substr string, limit int) ([]listing.Record, error)
}
