package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search Prometheus metrics.
var (
	CategoryFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "category_fetch_duration_seconds",
			Help:      "Catalog fetch duration per listing category in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"category", "status"},
	)

	CategoryFetchFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "category_fetch_failures_total",
			Help:      "Catalog fetches that failed or timed out, per listing category",
		},
		[]string{"category"},
	)

	CandidatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_total",
			Help:      "Scored candidates emitted per listing category",
		},
		[]string{"category"},
	)

	SuggestionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestion_requests_total",
			Help:      "Suggestion requests by outcome",
		},
		[]string{"status"}, // "ok" / "short" / "error"
	)
)

var registerSearchOnce sync.Once

// RegisterSearchMetrics registers the search metrics with the default registry.
// Safe to call more than once.
func RegisterSearchMetrics() {
	registerSearchOnce.Do(func() {
		prometheus.MustRegister(
			CategoryFetchDuration,
			CategoryFetchFailuresTotal,
			CandidatesTotal,
			SuggestionRequestsTotal,
		)
	})
}
