package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/linguist/logger"
)

// MeterConfig configures OTLP metric export.
type MeterConfig struct {
	// Enabled turns on metric export.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// ServiceName is the name of the service.
	ServiceName string `yaml:"-" mapstructure:"-"`
	// ServiceVersion is the version of the service.
	ServiceVersion string `yaml:"-" mapstructure:"-"`
	// Environment is the deployment environment (development, staging, production).
	Environment string `yaml:"-" mapstructure:"-"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// Insecure allows insecure connections (for development).
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// Interval is the metric export interval.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// ApplyDefaults fills in the endpoint and export interval.
func (c *MeterConfig) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.Interval <= 0 {
		c.Interval = 15 * time.Second
	}
}

// InitMeter installs a global meter provider that pushes to config.Endpoint.
// The caller shuts it down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments linguist records: inbound HTTP requests and
// outbound provider calls.
type Metrics struct {
	httpRequests     metric.Int64Counter
	httpDuration     metric.Float64Histogram
	httpActive       metric.Int64UpDownCounter
	providerCalls    metric.Int64Counter
	providerDuration metric.Float64Histogram
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)
	if m.httpRequests, err = meter.Int64Counter("linguist.http.requests",
		metric.WithDescription("Completed HTTP requests by route and status"),
	); err != nil {
		return nil, fmt.Errorf("creating linguist.http.requests: %w", err)
	}
	if m.httpDuration, err = meter.Float64Histogram("linguist.http.request.duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating linguist.http.request.duration: %w", err)
	}
	if m.httpActive, err = meter.Int64UpDownCounter("linguist.http.requests.active",
		metric.WithDescription("HTTP requests in flight"),
	); err != nil {
		return nil, fmt.Errorf("creating linguist.http.requests.active: %w", err)
	}
	if m.providerCalls, err = meter.Int64Counter("linguist.provider.calls",
		metric.WithDescription("Provider calls by provider and outcome"),
	); err != nil {
		return nil, fmt.Errorf("creating linguist.provider.calls: %w", err)
	}
	if m.providerDuration, err = meter.Float64Histogram("linguist.provider.call.duration",
		metric.WithDescription("Provider call duration, one observation per attempt"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating linguist.provider.call.duration: %w", err)
	}
	return &m, nil
}

// RequestStarted marks one more request in flight.
func (m *Metrics) RequestStarted(ctx context.Context) {
	m.httpActive.Add(ctx, 1)
}

// RequestFinished records a completed request. route must already be
// normalized so that ids do not become label values.
func (m *Metrics) RequestFinished(ctx context.Context, route string, status int, d time.Duration) {
	m.httpActive.Add(ctx, -1)
	m.httpRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("route", route),
		attribute.Int("status", status),
	))
	m.httpDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("route", route)))
}

// ProviderCall records one attempt against a provider.
func (m *Metrics) ProviderCall(ctx context.Context, provider string, err error, d time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.providerCalls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("outcome", outcome),
	))
	m.providerDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("provider", provider)))
}
