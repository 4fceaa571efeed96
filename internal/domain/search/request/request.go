package request

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/tripsearch/internal/domain"
	"github.com/kailas-cloud/tripsearch/internal/domain/listing"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/sortmode"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length in runes.
	MaxQueryLength = 512
	DefaultLimit   = 20
	MaxLimit       = 100
)

// Filters are the optional structured filters of a search.
// Nil pointers and empty strings mean "not applied".
type Filters struct {
	PriceMin     *float64
	PriceMax     *float64
	Rating       *float64
	Category     string
	Location     string
	Bedrooms     *int
	MaxGuests    *int
	PropertyType string
	// Amenities is accepted for compatibility; no category filters on it.
	Amenities []string
}

// Sanitized returns a copy with unusable values dropped: NaN or infinite numbers
// become nil, text filters are trimmed.
func (f Filters) Sanitized() Filters {
	out := Filters{
		PriceMin:     finite(f.PriceMin),
		PriceMax:     finite(f.PriceMax),
		Rating:       finite(f.Rating),
		Category:     strings.TrimSpace(f.Category),
		Location:     strings.TrimSpace(f.Location),
		Bedrooms:     f.Bedrooms,
		MaxGuests:    f.MaxGuests,
		PropertyType: strings.TrimSpace(f.PropertyType),
	}
	if len(f.Amenities) > 0 {
		out.Amenities = append([]string(nil), f.Amenities...)
	}
	return out
}

func finite(p *float64) *float64 {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return nil
	}
	v := *p
	return &v
}

// Request is a validated search query.
type Request struct {
	query   string
	scope   listing.Scope
	filters Filters
	sort    sortmode.Mode
	limit   int
	offset  int
}

// New validates and normalizes search parameters.
// Defaults: scope=all, sort=relevance, limit=20, offset=0. An empty query is valid.
func New(
	query string,
	scope listing.Scope,
	filters Filters,
	sort sortmode.Mode,
	limit, offset int,
) (Request, error) {
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars): %w", MaxQueryLength, domain.ErrInvalidRequest)
	}
	if scope == "" {
		scope = listing.ScopeAll
	}
	if _, err := listing.ParseScope(string(scope)); err != nil {
		return Request{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	if sort == "" {
		sort = sortmode.Relevance
	}
	if !sort.IsValid() {
		return Request{}, fmt.Errorf("invalid sort mode %q: %w", sort, domain.ErrInvalidRequest)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	return Request{
		query:   query,
		scope:   scope,
		filters: filters.Sanitized(),
		sort:    sort,
		limit:   limit,
		offset:  offset,
	}, nil
}

// Query returns the raw search text.
func (r *Request) Query() string { return r.query }

// Terms returns the tokenized query: lower-cased, split on whitespace runs.
func (r *Request) Terms() []string { return Tokenize(r.query) }

// Scope returns the category selector.
func (r *Request) Scope() listing.Scope { return r.scope }

// Filters returns the sanitized structured filters.
func (r *Request) Filters() Filters { return r.filters }

// Sort returns the result ordering.
func (r *Request) Sort() sortmode.Mode { return r.sort }

// Limit returns the page size.
func (r *Request) Limit() int { return r.limit }

// Offset returns the number of sorted results to skip.
func (r *Request) Offset() int { return r.offset }

// Tokenize lower-cases and trims s, then splits it on runs of whitespace.
// Empty tokens never appear in the output.
func Tokenize(s string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(s)))
}
