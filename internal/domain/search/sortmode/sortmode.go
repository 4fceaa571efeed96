package sortmode

// Mode is the ordering applied to merged search results.
type Mode string

// Sort mode constants.
const (
	// Relevance orders by descending score. It is the default.
	Relevance Mode = "relevance"
	PriceLow  Mode = "price-low"
	PriceHigh Mode = "price-high"
	Rating    Mode = "rating"
	Newest    Mode = "newest"
	// Popular orders by review_count * rating.
	Popular Mode = "popular"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	switch m {
	case Relevance, PriceLow, PriceHigh, Rating, Newest, Popular:
		return true
	default:
		return false
	}
}
