package provider

import (
	"context"
	"time"

	"github.com/kbukum/linguist/observability"
)

// WithMetrics records every Execute as a provider call on metrics. A nil
// metrics value disables recording.
func WithMetrics[I, O any](metrics *observability.Metrics) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &metricsRR[I, O]{inner: inner, metrics: metrics}
	}
}

type metricsRR[I, O any] struct {
	inner   RequestResponse[I, O]
	metrics *observability.Metrics
}

func (m *metricsRR[I, O]) Name() string                         { return m.inner.Name() }
func (m *metricsRR[I, O]) IsAvailable(ctx context.Context) bool { return m.inner.IsAvailable(ctx) }

func (m *metricsRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	if m.metrics == nil {
		return m.inner.Execute(ctx, input)
	}
	start := time.Now()
	output, err := m.inner.Execute(ctx, input)
	m.metrics.ProviderCall(ctx, m.inner.Name(), err, time.Since(start))
	return output, err
}
