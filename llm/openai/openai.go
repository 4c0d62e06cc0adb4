// Package openai implements the llm.Dialect for OpenAI-compatible chat
// completion APIs (OpenAI, DeepSeek and others exposing /chat/completions).
//
// Importing the package registers the "openai" dialect.
package openai

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kbukum/linguist/llm"
)

// DialectName is the registered dialect name.
const DialectName = "openai"

func init() {
	llm.RegisterDialect(DialectName, &Dialect{})
}

// Dialect maps llm types to the chat completions wire format.
type Dialect struct{}

var _ llm.Dialect = (*Dialect)(nil)

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []llm.Message   `json:"messages"`
	Temperature    *float64        `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message llm.Message `json:"message"`
	} `json:"choices"`
	Usage llm.Usage `json:"usage"`
}

// Name returns "openai".
func (d *Dialect) Name() string { return DialectName }

// ChatPath returns the chat completions endpoint.
func (d *Dialect) ChatPath() string { return "/chat/completions" }

// HealthPath returns the model listing endpoint.
func (d *Dialect) HealthPath() string { return "/models" }

// BuildRequest maps a CompletionRequest to the chat completions body.
func (d *Dialect) BuildRequest(req llm.CompletionRequest) (any, error) {
	msgs := req.AllMessages()
	if len(msgs) == 0 {
		return nil, errors.New("openai: at least one message is required")
	}
	body := chatRequest{
		Model:     req.Model,
		Messages:  msgs,
		MaxTokens: req.MaxTokens,
	}
	if req.Temperature != 0 {
		t := req.Temperature
		body.Temperature = &t
	}
	if req.JSONMode {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	return body, nil
}

// ParseResponse takes the first choice's message content.
func (d *Dialect) ParseResponse(body []byte) (*llm.CompletionResponse, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("openai: decode: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai: response has no choices")
	}
	return &llm.CompletionResponse{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage:   resp.Usage,
	}, nil
}
