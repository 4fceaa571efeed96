package result

import "github.com/kailas-cloud/tripsearch/internal/domain/listing"

// Result is a single scored search hit.
type Result struct {
	id         string
	category   listing.Category
	score      float64
	data       listing.Record
	highlights []string
}

// New creates a search result.
func New(
	id string, category listing.Category, score float64,
	data listing.Record, highlights []string,
) Result {
	return Result{
		id: id, category: category, score: score,
		data: data, highlights: highlights,
	}
}

// ID returns the listing identifier.
func (r *Result) ID() string { return r.id }

// Category returns the listing category the result was produced for.
func (r *Result) Category() listing.Category { return r.category }

// Score returns the relevance score.
func (r *Result) Score() float64 { return r.score }

// Data returns the full listing record as fetched.
func (r *Result) Data() listing.Record { return r.data }

// Highlights returns the matched fragments, field by field.
func (r *Result) Highlights() []string { return r.highlights }

// Price returns the category-specific headline price (0 when absent).
func (r *Result) Price() float64 { return r.data.Number(r.category.PriceField()) }
