package search

import (
	"cmp"
	"slices"

	"github.com/kailas-cloud/tripsearch/internal/domain/search/result"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/sortmode"
)

// Sort orders results in place. The sort is stable: ties keep their merge order.
func Sort(results []result.Result, mode sortmode.Mode) {
	slices.SortStableFunc(results, compareFunc(mode))
}

func compareFunc(mode sortmode.Mode) func(a, b result.Result) int {
	switch mode {
	case sortmode.PriceLow:
		return func(a, b result.Result) int { return cmp.Compare(a.Price(), b.Price()) }
	case sortmode.PriceHigh:
		return func(a, b result.Result) int { return cmp.Compare(b.Price(), a.Price()) }
	case sortmode.Rating:
		return func(a, b result.Result) int {
			return cmp.Compare(b.Data().Rating(), a.Data().Rating())
		}
	case sortmode.Newest:
		return func(a, b result.Result) int {
			return b.Data().CreatedAt().Compare(a.Data().CreatedAt())
		}
	case sortmode.Popular:
		return func(a, b result.Result) int { return cmp.Compare(popularity(b), popularity(a)) }
	default:
		return func(a, b result.Result) int { return cmp.Compare(b.Score(), a.Score()) }
	}
}

func popularity(r result.Result) float64 {
	return r.Data().ReviewCount() * r.Data().Rating()
}

// Paginate returns results[offset:offset+limit], clipped to the slice bounds.
// An offset past the end yields an empty, non-nil page.
func Paginate(results []result.Result, offset, limit int) []result.Result {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(results) || limit <= 0 {
		return []result.Result{}
	}
	end := offset + min(limit, len(results)-offset)
	return results[offset:end]
}
