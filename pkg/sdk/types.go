package tripsearch

import "time"

// Category is the kind of listing a result refers to.
type Category string

// Category constants.
const (
	CategoryProperty  Category = "property"
	CategoryTour      Category = "tour"
	CategoryPackage   Category = "package"
	CategoryTransport Category = "transport"
)

// SearchType selects which categories a search covers.
type SearchType string

// Search type constants.
const (
	TypeAll        SearchType = "all"
	TypeProperties SearchType = "properties"
	TypeTours      SearchType = "tours"
	TypePackages   SearchType = "packages"
	TypeTransport  SearchType = "transport"
)

// SortMode controls result ordering.
type SortMode string

// Sort mode constants.
const (
	SortRelevance SortMode = "relevance"
	SortPriceLow  SortMode = "price-low"
	SortPriceHigh SortMode = "price-high"
	SortRating    SortMode = "rating"
	SortNewest    SortMode = "newest"
	SortPopular   SortMode = "popular"
)

// Filters narrow the candidates of the categories they apply to.
// Nil pointers and empty strings are not applied.
type Filters struct {
	PriceMin     *float64
	PriceMax     *float64
	Rating       *float64 // minimum rating
	Category     string   // tour category
	Location     string   // case-insensitive substring
	Bedrooms     *int     // minimum bedrooms
	MaxGuests    *int     // minimum guest capacity
	PropertyType string
	Amenities    []string
}

// SearchOptions are the optional parameters of Client.Search.
type SearchOptions struct {
	Type    SearchType
	Filters Filters
	Sort    SortMode
	Limit   int // default 20, max 100
	Offset  int
}

// Result is a single ranked listing.
type Result struct {
	ID         string
	Type       Category
	Score      float64
	Data       map[string]any // the listing row as stored
	Highlights []string
}

// SearchResponse is one page of results.
type SearchResponse struct {
	Results []Result
	// Total is the number of merged results before pagination.
	Total int
}

// HealthStatus represents the catalog store health.
type HealthStatus struct {
	Status string // "ok" or "error"
	Checks map[string]string
	// Latency is the duration of the store ping.
	Latency time.Duration
}

// Float returns a pointer to v, for Filters.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for Filters.
func Int(v int) *int { return &v }
