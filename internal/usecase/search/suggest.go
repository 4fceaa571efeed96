package search

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/tripsearch/internal/domain/listing"
	"github.com/kailas-cloud/tripsearch/internal/logger"
	"github.com/kailas-cloud/tripsearch/internal/metrics"
)

// Suggestion limits.
const (
	DefaultSuggestionLimit = 5
	MaxSuggestionLimit     = 20
	// MinSuggestionQuery is the shortest trimmed query, in runes, that is looked up.
	MinSuggestionQuery = 2
)

// suggestionSources are searched in order; earlier sources win duplicates.
var suggestionSources = []listing.Category{listing.Property, listing.Tour}

// Suggestions returns up to limit distinct property and tour titles or
// locations containing the query. Short queries return an empty list without
// touching the store. Any fetch failure also yields an empty list.
func (s *Service) Suggestions(ctx context.Context, query string, limit int) []string {
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < MinSuggestionQuery {
		metrics.SuggestionRequestsTotal.WithLabelValues("short").Inc()
		return []string{}
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	limit = min(limit, MaxSuggestionLimit)

	ctx, span := tracer.Start(ctx, "search.Suggestions", trace.WithAttributes(
		attribute.Int("search.limit", limit),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	batches := make([][]listing.Record, len(suggestionSources))
	g, gctx := errgroup.WithContext(ctx)
	for i, cat := range suggestionSources {
		g.Go(func() error {
			recs, err := s.repo.Matching(gctx, cat, q, limit)
			if err != nil {
				return err //nolint:wrapcheck // logged below with context
			}
			batches[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.SuggestionRequestsTotal.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "suggestion fetch failed")
		logger.FromContext(ctx).Warn("Suggestion fetch failed", zap.Error(err))
		return []string{}
	}

	metrics.SuggestionRequestsTotal.WithLabelValues("ok").Inc()
	return collectSuggestions(batches, q, limit)
}

// collectSuggestions walks the batches in order, taking each record's title
// then location when it contains the query, skipping strings already taken.
func collectSuggestions(batches [][]listing.Record, query string, limit int) []string {
	needle := strings.ToLower(query)
	seen := make(map[string]struct{}, limit)
	out := make([]string, 0, limit)

	for _, recs := range batches {
		for _, rec := range recs {
			for _, field := range []string{listing.FieldTitle, listing.FieldLocation} {
				v, ok := rec.String(field)
				if !ok || v == "" || !strings.Contains(strings.ToLower(v), needle) {
					continue
				}
				if _, dup := seen[v]; dup {
					continue
				}
				seen[v] = struct{}{}
				out = append(out, v)
				if len(out) == limit {
					return out
				}
			}
		}
	}
	return out
}
