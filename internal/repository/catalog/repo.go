package catalog

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/tripsearch/internal/db"
	"github.com/kailas-cloud/tripsearch/internal/domain"
	"github.com/kailas-cloud/tripsearch/internal/domain/listing"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/request"
)

// DefaultMaxPerCategory is the default and the upper bound of rows fetched
// per category.
const DefaultMaxPerCategory = 100

// store is the consumer interface for catalog reads (ISP).
type store interface {
	Find(ctx context.Context, q *db.FindQuery) ([]db.Row, error)
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store          store
	maxPerCategory int
}

// New creates a catalog repository. Non-positive maxPerCategory selects the
// default; larger values are clamped to it.
func New(s store, maxPerCategory int) *Repo {
	if maxPerCategory <= 0 || maxPerCategory > DefaultMaxPerCategory {
		maxPerCategory = DefaultMaxPerCategory
	}
	return &Repo{store: s, maxPerCategory: maxPerCategory}
}

// Candidates fetches published listings of a category narrowed by the filters
// that apply to it, newest first and capped at the per-category maximum.
func (r *Repo) Candidates(
	ctx context.Context, cat listing.Category, f request.Filters,
) ([]listing.Record, error) {
	sc, ok := schemas[cat]
	if !ok {
		return nil, fmt.Errorf("candidates %q: %w", cat, domain.ErrUnknownCategory)
	}

	must := append([]filter.Condition{publishedCondition(sc)}, filterConditions(sc, f)...)
	expr, err := filter.NewExpression(must, nil)
	if err != nil {
		return nil, fmt.Errorf("candidates %s: %w", cat, err)
	}

	return r.find(ctx, sc, expr, r.maxPerCategory)
}

// Matching fetches up to limit published listings of a category whose title or
// location contains substr, case-insensitively.
func (r *Repo) Matching(
	ctx context.Context, cat listing.Category, substr string, limit int,
) ([]listing.Record, error) {
	sc, ok := schemas[cat]
	if !ok {
		return nil, fmt.Errorf("matching %q: %w", cat, domain.ErrUnknownCategory)
	}
	if limit <= 0 {
		return nil, nil
	}

	var should []filter.Condition
	for _, col := range []string{sc.title, sc.location} {
		if col == "" {
			continue
		}
		c, err := filter.NewContains(col, substr)
		if err != nil {
			return nil, fmt.Errorf("matching %s: %w", cat, err)
		}
		should = append(should, c)
	}

	expr, err := filter.NewExpression([]filter.Condition{publishedCondition(sc)}, should)
	if err != nil {
		return nil, fmt.Errorf("matching %s: %w", cat, err)
	}

	return r.find(ctx, sc, expr, limit)
}

func (r *Repo) find(
	ctx context.Context, sc schema, expr filter.Expression, limit int,
) ([]listing.Record, error) {
	rows, err := r.store.Find(ctx, &db.FindQuery{
		Table:   sc.table,
		Filters: expr,
		Limit:   limit,
		OrderBy: listing.FieldCreatedAt,
		Desc:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", sc.table, err)
	}

	records := make([]listing.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, listing.Record(row))
	}
	return records, nil
}

func publishedCondition(sc schema) filter.Condition {
	// Both values are non-empty constants, NewEqual cannot fail here.
	c, _ := filter.NewEqual(sc.publishKey, sc.publishValue)
	return c
}

// filterConditions maps caller filters onto the category's columns. Filters the
// category has no column for are ignored. Non-positive numbers and inverted
// price ranges are treated as absent.
func filterConditions(sc schema, f request.Filters) []filter.Condition {
	var out []filter.Condition
	add := func(c filter.Condition, err error) {
		if err == nil {
			out = append(out, c)
		}
	}

	if lo, hi := positive(f.PriceMin), positive(f.PriceMax); lo != nil || hi != nil {
		if rng, err := filter.NewRangeFilter(lo, hi); err == nil {
			add(filter.NewRange(sc.price, rng))
		}
	}
	if floor := positive(f.Rating); floor != nil {
		add(atLeast(listing.FieldRating, *floor))
	}
	if sc.location != "" && f.Location != "" {
		add(filter.NewContains(sc.location, f.Location))
	}
	if sc.bedrooms != "" && f.Bedrooms != nil && *f.Bedrooms > 0 {
		add(atLeast(sc.bedrooms, float64(*f.Bedrooms)))
	}
	if sc.guests != "" && f.MaxGuests != nil && *f.MaxGuests > 0 {
		add(atLeast(sc.guests, float64(*f.MaxGuests)))
	}
	if sc.propertyType != "" && f.PropertyType != "" {
		add(filter.NewEqual(sc.propertyType, f.PropertyType))
	}
	if sc.tag != "" && f.Category != "" {
		add(filter.NewEqual(sc.tag, f.Category))
	}

	return out
}

func atLeast(key string, v float64) (filter.Condition, error) {
	rng, err := filter.NewRangeFilter(&v, nil)
	if err != nil {
		return filter.Condition{}, err
	}
	return filter.NewRange(key, rng)
}

func positive(p *float64) *float64 {
	if p == nil || *p <= 0 {
		return nil
	}
	return p
}
