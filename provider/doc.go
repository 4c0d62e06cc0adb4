// Package provider defines the request/response contract shared by the
// remote inference backends and the middleware that decorates them.
//
// Both the multimodal client and the text-only completion adapter implement
// RequestResponse, so logging, metrics and tracing are attached the same way:
//
//	wrapped := provider.Chain(
//	    provider.WithLogging[In, Out](log),
//	    provider.WithMetrics[In, Out](metrics),
//	    provider.WithTracing[In, Out]("linguist"),
//	)(rawProvider)
package provider
