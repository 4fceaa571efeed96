package db

import "github.com/kailas-cloud/tripsearch/internal/domain/search/filter"

// FindQuery is the input for a filtered table scan.
type FindQuery struct {
	Table   string
	Filters filter.Expression
	// Limit caps the number of rows returned. Must be positive.
	Limit int
	// OrderBy is an optional column; rows are then ordered by it (descending when
	// Desc is set) with the primary key as tiebreak.
	OrderBy string
	Desc    bool
}

// Row is a single fetched record keyed by column name.
type Row map[string]any
