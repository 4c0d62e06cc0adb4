package observability

import "context"

// HealthStatus is the state of one dependency.
type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "up"
	HealthStatusDegraded HealthStatus = "degraded"
	HealthStatusDown     HealthStatus = "down"
)

// rank orders statuses so that the worst one wins in a report.
func (s HealthStatus) rank() int {
	switch s {
	case HealthStatusDown:
		return 2
	case HealthStatusDegraded:
		return 1
	default:
		return 0
	}
}

// Health is what one checker reports.
type Health struct {
	Name    string            `json:"name"`
	Status  HealthStatus      `json:"status"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// HealthChecker is implemented by the provider router and the history stores.
type HealthChecker interface {
	CheckHealth(ctx context.Context) Health
}

// HealthReport is the body of GET /health.
type HealthReport struct {
	Service    string       `json:"service"`
	Version    string       `json:"version,omitempty"`
	Status     HealthStatus `json:"status"`
	Components []Health     `json:"components,omitempty"`
}

// CheckAll runs every checker in order. The report takes the worst
// component status; a history store that is degraded never masks a
// provider that is down.
func CheckAll(ctx context.Context, service, version string, checkers ...HealthChecker) HealthReport {
	report := HealthReport{Service: service, Version: version, Status: HealthStatusUp}
	for _, c := range checkers {
		h := c.CheckHealth(ctx)
		report.Components = append(report.Components, h)
		if h.Status.rank() > report.Status.rank() {
			report.Status = h.Status
		}
	}
	return report
}
