package tripsearch

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// noScope labels operations that are not bound to a search scope.
const noScope = "none"

// resultBuckets cover one page up to the merged candidate set of all four
// categories.
var resultBuckets = []float64{0, 1, 5, 10, 20, 50, 100, 200, 400}

// sdkMetrics holds prometheus metrics registered for the SDK.
type sdkMetrics struct {
	operations   *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	results      *prometheus.HistogramVec
	emptyResults *prometheus.CounterVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripsearch",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "SDK operations by type, search scope and status.",
		}, []string{"operation", "scope", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tripsearch",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK operation duration in seconds by search scope.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "scope"}),
		results: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tripsearch",
			Subsystem: "sdk",
			Name:      "results",
			Help:      "Matches per call: ranked total for search, list size for suggestions.",
			Buckets:   resultBuckets,
		}, []string{"operation", "scope"}),
		emptyResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripsearch",
			Subsystem: "sdk",
			Name:      "empty_results_total",
			Help:      "Successful calls that matched nothing.",
		}, []string{"operation", "scope"}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.results); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.emptyResults); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("tripsearch: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("tripsearch: register metric: %w", err)
	}
	return nil
}

// operation describes one finished SDK call.
type operation struct {
	name  string
	scope SearchType // empty for calls outside a search scope
	query string
	start time.Time
	// matches is the number of ranked results or suggestions; negative when
	// the call does not produce any.
	matches int
	err     error
}

func (op operation) scopeLabel() string {
	if op.scope == "" {
		return noScope
	}
	return string(op.scope)
}

func (op operation) attrs(dur time.Duration) []any {
	attrs := []any{"op", op.name, "duration", dur}
	if op.scope != "" {
		attrs = append(attrs, "scope", string(op.scope))
	}
	if op.query != "" {
		attrs = append(attrs, "query", op.query)
	}
	if op.matches >= 0 {
		attrs = append(attrs, "matches", op.matches)
	}
	if op.err != nil {
		attrs = append(attrs, "error", op.err)
	}
	return attrs
}

// observer provides logging and metrics for SDK operations.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *sdkMetrics
	if reg != nil {
		var err error
		m, err = newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

// observe records one finished operation.
func (o *observer) observe(op operation) {
	if o == nil {
		return
	}
	dur := time.Since(op.start)

	if o.metrics != nil {
		scope := op.scopeLabel()
		status := "ok"
		if op.err != nil {
			status = "error"
		}
		o.metrics.operations.WithLabelValues(op.name, scope, status).Inc()
		o.metrics.duration.WithLabelValues(op.name, scope).Observe(dur.Seconds())

		if op.err == nil && op.matches >= 0 {
			o.metrics.results.WithLabelValues(op.name, scope).Observe(float64(op.matches))
			if op.matches == 0 {
				o.metrics.emptyResults.WithLabelValues(op.name, scope).Inc()
			}
		}
	}

	if o.logger != nil {
		if op.err != nil {
			o.logger.Warn("operation failed", op.attrs(dur)...)
		} else {
			o.logger.Debug("operation completed", op.attrs(dur)...)
		}
	}
}
