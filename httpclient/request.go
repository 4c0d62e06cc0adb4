package httpclient

// Request describes an outbound call relative to the client's BaseURL.
type Request struct {
	Method string
	Path   string
	// Headers are merged over the client defaults.
	Headers map[string]string
	// Body is sent as-is for []byte and string, JSON-encoded otherwise.
	Body any
}

// Response is a fully read reply.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}
