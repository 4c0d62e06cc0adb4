// Package llm provides a config-driven chat-completion adapter built on the
// httpclient/rest foundation.
//
// The adapter works with any text-only provider via the Dialect pattern,
// similar to how database/sql works with driver packages. Dialects register
// themselves by name:
//
//	import (
//	    "github.com/kbukum/linguist/llm"
//	    _ "github.com/kbukum/linguist/llm/openai" // registers "openai"
//	)
//
//	adapter, err := llm.New(llm.Config{
//	    Dialect: "openai",
//	    BaseURL: "https://api.deepseek.com",
//	    Model:   "deepseek-chat",
//	    Auth:    httpclient.BearerAuth(key),
//	})
//
//	text, err := llm.CompleteJSON(ctx, adapter, system, user)
package llm
