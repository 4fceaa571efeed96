package search

import (
	"context"

	"github.com/kailas-cloud/tripsearch/internal/domain/listing"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/relevance"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/request"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/result"
)

// PopularityMultiplier scales a listing's rating into its score bonus.
const PopularityMultiplier = 2

// CategoryAdapter fetches and scores the candidates of one listing category.
type CategoryAdapter interface {
	Category() listing.Category
	FetchCandidates(ctx context.Context, terms []string, f request.Filters) ([]result.Result, error)
}

// FieldWeight is the multiplier of one record field in a category's score.
type FieldWeight struct {
	Field  string
	Weight float64
}

// Weights lists the scored fields per category. Transport has no location and
// weighs its vehicle type at 8.
var Weights = map[listing.Category][]FieldWeight{
	listing.Property: {
		{listing.FieldTitle, 10},
		{listing.FieldDescription, 5},
		{listing.FieldLocation, 8},
		{listing.FieldPropertyType, 6},
	},
	listing.Tour: {
		{listing.FieldTitle, 10},
		{listing.FieldDescription, 5},
		{listing.FieldLocation, 8},
		{listing.FieldCategory, 6},
	},
	listing.Package: {
		{listing.FieldName, 10},
		{listing.FieldDescription, 5},
		{listing.FieldLocation, 8},
	},
	listing.Transport: {
		{listing.FieldTitle, 10},
		{listing.FieldDescription, 5},
		{listing.FieldVehicleType, 8},
	},
}

// weightedAdapter scores records as a weighted sum of field scores plus a
// popularity bonus.
type weightedAdapter struct {
	category listing.Category
	fields   []FieldWeight
	repo     Repository
}

// newAdapters returns one adapter per category, in merge order.
func newAdapters(repo Repository) []CategoryAdapter {
	out := make([]CategoryAdapter, 0, len(listing.Categories()))
	for _, cat := range listing.Categories() {
		out = append(out, &weightedAdapter{category: cat, fields: Weights[cat], repo: repo})
	}
	return out
}

func (a *weightedAdapter) Category() listing.Category { return a.category }

// FetchCandidates loads the category's records and keeps those with a non-zero score.
func (a *weightedAdapter) FetchCandidates(
	ctx context.Context, terms []string, f request.Filters,
) ([]result.Result, error) {
	records, err := a.repo.Candidates(ctx, a.category, f)
	if err != nil {
		return nil, err //nolint:wrapcheck // repository errors carry category context
	}

	out := make([]result.Result, 0, len(records))
	for _, rec := range records {
		score, highlights := a.score(rec, terms)
		if score == 0 {
			continue
		}
		out = append(out, result.New(rec.ID(), a.category, score, rec, highlights))
	}
	return out, nil
}

// score returns the record's relevance and the concatenated per-field highlights.
func (a *weightedAdapter) score(rec listing.Record, terms []string) (float64, []string) {
	var (
		total      float64
		highlights []string
	)
	for _, fw := range a.fields {
		value, ok := rec.String(fw.Field)
		if !ok {
			continue
		}
		fs := relevance.ScoreField(value, terms, fw.Weight)
		total += fs.Score
		highlights = append(highlights, fs.Highlights...)
	}

	total += max(rec.Rating(), 0) * PopularityMultiplier

	if highlights == nil {
		highlights = []string{}
	}
	return total, highlights
}
