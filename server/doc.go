// Package server provides the HTTP server for linguist using Gin behind an
// h2c handler, so HTTP/1.1 and cleartext HTTP/2 clients share one port.
//
// # Middleware
//
// Built-in middleware (server/middleware) wraps the whole handler:
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: request ID generation and propagation into the context logger
//   - CORS: cross-origin resource sharing configuration
//   - BodySizeLimit: request body size limits for audio uploads
//   - RequestLogger: request logging with duration tracking
//   - Metrics: OpenTelemetry request counters, when enabled
package server
