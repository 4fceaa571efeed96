package tripsearch

import (
	"context"
	"time"

	healthuc "github.com/kailas-cloud/tripsearch/internal/usecase/health"
)

// Health checks the catalog store.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	var latency time.Duration
	for k, v := range report.Checks {
		checks[k] = string(v.Result)
		latency = max(latency, v.Latency)
	}
	return HealthStatus{
		Status:  string(report.Status),
		Checks:  checks,
		Latency: latency,
	}
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
