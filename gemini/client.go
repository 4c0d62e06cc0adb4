// Package gemini is a client for the generateContent endpoint of the
// Generative Language REST API: multimodal prompts in, text or inline audio out.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/kbukum/linguist/httpclient"
	"github.com/kbukum/linguist/httpclient/rest"
)

const (
	// DefaultBaseURL is the public API endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	// DefaultModel handles audio understanding with structured output.
	DefaultModel = "gemini-2.5-flash"
	// DefaultSpeechModel produces audio output.
	DefaultSpeechModel = "gemini-2.5-flash-preview-tts"
	// DefaultVoice is the prebuilt voice used for speech synthesis.
	DefaultVoice = "Kore"

	apiKeyHeader   = "x-goog-api-key"
	defaultTimeout = 90 * time.Second
)

// ErrNoModel is returned when neither the request nor the client names a model.
var ErrNoModel = errors.New("gemini: model is required")

// Config configures the client.
type Config struct {
	Name    string        `yaml:"name" mapstructure:"name"`
	APIKey  string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Model   string        `yaml:"model" mapstructure:"model"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills in unset fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "gemini"
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Client calls generateContent. It implements
// provider.RequestResponse[GenerateRequest, GenerateResponse].
type Client struct {
	rest  *rest.Client
	name  string
	model string
}

// New creates a client. An empty API key is accepted; requests will then be
// rejected by the server.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	c, err := rest.New(httpclient.Config{
		Name:    cfg.Name,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.APIKeyAuthHeader(cfg.APIKey, apiKeyHeader),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create rest client: %w", err)
	}
	return &Client{rest: c, name: cfg.Name, model: cfg.Model}, nil
}

// Name returns the configured client name.
func (c *Client) Name() string { return c.name }

// IsAvailable reports whether the API host answers.
func (c *Client) IsAvailable(ctx context.Context) bool {
	return c.rest.HTTP().IsAvailable(ctx)
}

// Execute sends req to the model it names, or the client's default model.
func (c *Client) Execute(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}
	if model == "" {
		return GenerateResponse{}, ErrNoModel
	}

	path := "/v1beta/models/" + url.PathEscape(model) + ":generateContent"
	resp, err := rest.Post[GenerateResponse](ctx, c.rest, path, req)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("gemini: generate content: %w", err)
	}
	return resp.Data, nil
}
