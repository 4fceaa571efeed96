package tripsearch

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/tripsearch/internal/domain/listing"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/request"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/result"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/sortmode"
	searchuc "github.com/kailas-cloud/tripsearch/internal/usecase/search"
)

// Search ranks listings across the selected categories and returns one page.
// A category whose fetch fails contributes no results; it is not an error.
// Invalid options return an error wrapping ErrInvalidRequest.
func (c *Client) Search(ctx context.Context, query string, opts *SearchOptions) (_ *SearchResponse, err error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	scope := opts.Type
	if scope == "" {
		scope = TypeAll
	}

	op := operation{name: "search", scope: scope, query: query, start: time.Now(), matches: -1}
	defer func() {
		op.err = err
		c.obs.observe(op)
	}()

	req, err := request.New(
		query,
		listing.Scope(opts.Type),
		filtersToDomain(opts.Filters),
		sortmode.Mode(opts.Sort),
		opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	page, total := c.searchSvc.Search(ctx, &req)
	op.matches = total

	out := make([]Result, len(page))
	for i := range page {
		out[i] = resultFromDomain(&page[i])
	}
	return &SearchResponse{Results: out, Total: total}, nil
}

// Suggestions returns up to limit distinct property and tour titles or
// locations containing query. Queries shorter than two characters, and any
// store failure, yield an empty list. Non-positive limit selects 5.
func (c *Client) Suggestions(ctx context.Context, query string, limit int) []string {
	op := operation{name: "suggestions", query: query, start: time.Now()}
	out := c.searchSvc.Suggestions(ctx, query, limit)
	op.matches = len(out)
	c.obs.observe(op)
	return out
}

// PopularSearches returns the curated list of popular search phrases.
func (c *Client) PopularSearches() []string {
	return searchuc.PopularSearches()
}

func filtersToDomain(f Filters) request.Filters {
	return request.Filters{
		PriceMin:     f.PriceMin,
		PriceMax:     f.PriceMax,
		Rating:       f.Rating,
		Category:     f.Category,
		Location:     f.Location,
		Bedrooms:     f.Bedrooms,
		MaxGuests:    f.MaxGuests,
		PropertyType: f.PropertyType,
		Amenities:    f.Amenities,
	}
}

func resultFromDomain(r *result.Result) Result {
	highlights := r.Highlights()
	if highlights == nil {
		highlights = []string{}
	}
	return Result{
		ID:         r.ID(),
		Type:       Category(r.Category()),
		Score:      r.Score(),
		Data:       map[string]any(r.Data()),
		Highlights: highlights,
	}
}
