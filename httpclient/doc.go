// Package httpclient provides the HTTP client used to reach remote inference
// providers: base URL resolution, default headers, authentication, a
// per-request timeout and status-code classification into typed errors.
//
// Retries are not done here; callers wrap calls with
// resilience.Retry so that every provider task owns its own retry policy.
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://generativelanguage.googleapis.com",
//	    Timeout: 90 * time.Second,
//	    Auth:    httpclient.APIKeyAuthHeader(key, "x-goog-api-key"),
//	})
//
// The rest subpackage adds typed JSON helpers on top of Client.
package httpclient
