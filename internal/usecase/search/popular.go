package search

import "slices"

var popularSearches = []string{
	"Serengeti safari",
	"Zanzibar beach resorts",
	"Mount Kilimanjaro trek",
	"Maasai Mara",
	"Ngorongoro Crater",
	"Nairobi apartments",
	"Diani Beach",
	"Lake Naivasha",
	"Gorilla trekking Bwindi",
	"Airport transfers",
}

// PopularSearches returns the fixed list of popular search phrases.
func PopularSearches() []string {
	return slices.Clone(popularSearches)
}
