package linguist

import (
	"context"

	"github.com/kbukum/linguist/observability"
)

// CheckHealth reports credential state. A missing primary key takes every
// task down; a missing fallback only disables the DefineWord fallback.
func (r *Router) CheckHealth(_ context.Context) observability.Health {
	h := observability.Health{
		Name:    "providers",
		Status:  observability.HealthStatusUp,
		Details: map[string]string{PrimaryProvider: "configured", FallbackProvider: "disabled"},
	}
	if r.FallbackConfigured() {
		h.Details[FallbackProvider] = "configured"
	}
	if r.requirePrimary() != nil {
		h.Status = observability.HealthStatusDown
		h.Details[PrimaryProvider] = "missing credential"
		h.Message = "primary provider key is not configured"
	}
	return h
}

var _ observability.HealthChecker = (*Router)(nil)
