// Package resilience provides the retry combinator used for every remote
// provider call.
//
// Retry runs an operation up to RetryPolicy.MaxAttempts times with plain
// exponential backoff (no jitter, no cap). Only failures accepted by the
// policy's classifier are retried; the default classifier,
// IsServerSideFailure, accepts messages that mention "internal error",
// "500" or "503".
//
//	result, err := resilience.Retry(ctx, resilience.DefaultRetryPolicy(), func() (*Reply, error) {
//	    return client.Call(ctx, req)
//	})
package resilience
