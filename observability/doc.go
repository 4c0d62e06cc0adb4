// Package observability wires OpenTelemetry tracing and metrics and reports
// component health.
//
// Tracing is exported over OTLP/HTTP when enabled in configuration:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("linguist"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "linguist.transcribe")
//	defer span.End()
//
// Metrics instruments record provider calls and HTTP requests:
//
//	metrics, err := observability.NewMetrics(observability.Meter("linguist"))
//	metrics.ProviderCall(ctx, "gemini", err, time.Since(start))
//
// CheckAll folds component checks into the /health report.
package observability
