package search

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/tripsearch/internal/domain/listing"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/request"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/result"
	"github.com/kailas-cloud/tripsearch/internal/logger"
	"github.com/kailas-cloud/tripsearch/internal/metrics"
)

// DefaultFetchTimeout bounds a single category fetch.
const DefaultFetchTimeout = 5 * time.Second

var tracer = otel.Tracer("github.com/kailas-cloud/tripsearch/internal/usecase/search")

// Service ranks listings across categories and serves suggestions.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	repo         Repository
	adapters     []CategoryAdapter
	fetchTimeout time.Duration
}

// New creates a search service. Non-positive fetchTimeout selects DefaultFetchTimeout.
func New(repo Repository, fetchTimeout time.Duration) *Service {
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	return &Service{
		repo:         repo,
		adapters:     newAdapters(repo),
		fetchTimeout: fetchTimeout,
	}
}

// Search fans out to the category adapters selected by the request, merges
// their candidates in fixed category order, sorts and paginates. It returns the
// page and the number of merged candidates before slicing.
//
// A failing or timed-out category contributes nothing; Search itself never fails.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]result.Result, int) {
	ctx, span := tracer.Start(ctx, "search.Search", trace.WithAttributes(
		attribute.String("search.scope", string(req.Scope())),
		attribute.String("search.sort", string(req.Sort())),
		attribute.Int("search.limit", req.Limit()),
		attribute.Int("search.offset", req.Offset()),
	))
	defer span.End()

	terms := req.Terms()
	selected := s.selectAdapters(req.Scope())

	// One slot per adapter keeps the merge order independent of completion order.
	buckets := make([][]result.Result, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	for i, a := range selected {
		g.Go(func() error {
			buckets[i] = s.fetchCategory(gctx, a, terms, req.Filters())
			return nil
		})
	}
	_ = g.Wait() // adapters never return errors

	var merged []result.Result
	for _, b := range buckets {
		merged = append(merged, b...)
	}

	Sort(merged, req.Sort())
	total := len(merged)
	page := Paginate(merged, req.Offset(), req.Limit())

	span.SetAttributes(
		attribute.Int("search.total", total),
		attribute.Int("search.returned", len(page)),
	)
	return page, total
}

func (s *Service) selectAdapters(scope listing.Scope) []CategoryAdapter {
	cats := scope.Categories()
	out := make([]CategoryAdapter, 0, len(cats))
	for _, a := range s.adapters {
		for _, c := range cats {
			if a.Category() == c {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// fetchCategory runs one adapter under the per-category timeout. Errors are
// logged and recorded, and yield no candidates.
func (s *Service) fetchCategory(
	ctx context.Context, a CategoryAdapter, terms []string, f request.Filters,
) []result.Result {
	cat := string(a.Category())

	ctx, span := tracer.Start(ctx, "search.fetchCategory", trace.WithAttributes(
		attribute.String("search.category", cat),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	start := time.Now()
	candidates, err := a.FetchCandidates(ctx, terms, f)
	elapsed := time.Since(start)

	if err != nil {
		metrics.CategoryFetchDuration.WithLabelValues(cat, "error").Observe(elapsed.Seconds())
		metrics.CategoryFetchFailuresTotal.WithLabelValues(cat).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "category fetch failed")

		logger.FromContext(ctx).Warn("Category fetch failed",
			zap.String("category", cat),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		return nil
	}

	metrics.CategoryFetchDuration.WithLabelValues(cat, "ok").Observe(elapsed.Seconds())
	metrics.CandidatesTotal.WithLabelValues(cat).Add(float64(len(candidates)))
	span.SetAttributes(attribute.Int("search.candidates", len(candidates)))

	return candidates
}
