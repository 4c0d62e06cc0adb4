// Package errors provides the unified error type used across linguist.
//
// Every failure that leaves the orchestration layer is an *AppError carrying a
// machine-readable code, a recommended HTTP status and a retryable flag. The
// provider taxonomy (missing credential, transient/permanent provider failure,
// malformed, empty, or audio-less responses) lives here so that the router,
// the normalizer and the HTTP API agree on one vocabulary.
package errors
