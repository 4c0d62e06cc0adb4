package llm

import (
	"context"

	"github.com/kbukum/linguist/provider"
)

// CompleteJSON sends a system and a user prompt with the provider's JSON
// response mode enabled and returns the reply unparsed. Any RequestResponse
// works, so middleware-wrapped adapters can be passed directly.
func CompleteJSON(ctx context.Context, p provider.RequestResponse[CompletionRequest, CompletionResponse], system, user string) (string, error) {
	resp, err := p.Execute(ctx, CompletionRequest{
		SystemPrompt: system,
		Messages:     []Message{{Role: "user", Content: user}},
		JSONMode:     true,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
