// Package tripsearch embeds the travel-listing search engine in a Go program.
//
// The client talks to the catalog store directly (PostgreSQL, MySQL, SQLite or
// Redis with the query engine) and runs the same ranking as the HTTP API.
//
//	client, _ := tripsearch.New(ctx, tripsearch.WithPostgres(dsn))
//	defer client.Close()
//
//	res, _ := client.Search(ctx, "lake view", &tripsearch.SearchOptions{
//	    Type:    tripsearch.TypeProperties,
//	    Sort:    tripsearch.SortPriceLow,
//	    Filters: tripsearch.Filters{PriceMax: tripsearch.Float(200)},
//	    Limit:   10,
//	})
//	for _, r := range res.Results {
//	    fmt.Println(r.Type, r.ID, r.Score, r.Data["title"])
//	}
//
//	suggestions := client.Suggestions(ctx, "naiv", 5)
package tripsearch
