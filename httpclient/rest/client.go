// Package rest sends JSON requests over httpclient.Client and decodes typed
// replies.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kbukum/linguist/httpclient"
)

// Client talks JSON to one API host.
type Client struct {
	http *httpclient.Client
}

// New creates a client. JSON Content-Type and Accept headers are added unless
// cfg already sets them.
func New(cfg httpclient.Config) (*Client, error) {
	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	cfg.Headers = headers

	c, err := httpclient.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{http: c}, nil
}

// HTTP returns the underlying client.
func (c *Client) HTTP() *httpclient.Client {
	return c.http
}

// Response is a decoded reply. Raw keeps the body for error reports.
type Response[T any] struct {
	StatusCode int
	Data       T
	Raw        []byte
}

// DecodeError reports a 2xx body that is not the expected JSON.
type DecodeError struct {
	Raw []byte
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("httpclient/rest: decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Get fetches path and decodes the reply into T.
func Get[T any](ctx context.Context, c *Client, path string) (*Response[T], error) {
	return send[T](ctx, c, httpclient.Request{Method: http.MethodGet, Path: path})
}

// Post sends body as JSON to path and decodes the reply into T.
func Post[T any](ctx context.Context, c *Client, path string, body any) (*Response[T], error) {
	return send[T](ctx, c, httpclient.Request{Method: http.MethodPost, Path: path, Body: body})
}

func send[T any](ctx context.Context, c *Client, req httpclient.Request) (*Response[T], error) {
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	out := &Response[T]{StatusCode: resp.StatusCode, Raw: resp.Body}
	if len(resp.Body) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(resp.Body, &out.Data); err != nil {
		return nil, &DecodeError{Raw: resp.Body, Err: err}
	}
	return out, nil
}
