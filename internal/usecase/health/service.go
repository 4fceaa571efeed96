package health

import (
	"context"
	"time"
)

// DefaultCheckTimeout bounds a single component check.
const DefaultCheckTimeout = 2 * time.Second

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Unhealthy indicates the catalog store cannot serve searches.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Check is the outcome of one component probe.
type Check struct {
	Result  CheckResult
	Latency time.Duration
}

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]Check
}

// IsHealthy reports whether the service can answer searches.
func (r Report) IsHealthy() bool { return r.Status == Healthy }

// Service coordinates health checks.
type Service struct {
	store   StorePinger
	timeout time.Duration
}

// New creates a Service. Non-positive timeout selects DefaultCheckTimeout.
func New(store StorePinger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	return &Service{store: store, timeout: timeout}
}

// Check pings the catalog store.
func (s *Service) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	res := CheckOK
	if err := s.store.Ping(ctx); err != nil {
		res = CheckError
	}

	status := Healthy
	if res == CheckError {
		status = Unhealthy
	}

	return Report{
		Status: status,
		Checks: map[string]Check{
			"catalog": {Result: res, Latency: time.Since(start)},
		},
	}
}
