package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/linguist/httpclient"
	"github.com/kbukum/linguist/llm"
)

func TestDialect_Registered(t *testing.T) {
	d, err := llm.GetDialect(DialectName)
	if err != nil {
		t.Fatalf("GetDialect: %v", err)
	}
	if d.ChatPath() != "/chat/completions" {
		t.Errorf("ChatPath = %q", d.ChatPath())
	}
}

func TestDialect_BuildRequest(t *testing.T) {
	d := &Dialect{}
	body, err := d.BuildRequest(llm.CompletionRequest{
		Model:        "deepseek-chat",
		SystemPrompt: "sys",
		Messages:     []llm.Message{{Role: "user", Content: "hi"}},
		JSONMode:     true,
	})
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}
	raw, _ := json.Marshal(body)
	var got map[string]any
	_ = json.Unmarshal(raw, &got)

	if got["model"] != "deepseek-chat" {
		t.Errorf("model = %v", got["model"])
	}
	rf, _ := got["response_format"].(map[string]any)
	if rf["type"] != "json_object" {
		t.Errorf("response_format = %v", got["response_format"])
	}
	msgs, _ := got["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("messages = %v", got["messages"])
	}
	if _, ok := got["temperature"]; ok {
		t.Error("zero temperature should be omitted")
	}
}

func TestDialect_BuildRequest_NoMessages(t *testing.T) {
	if _, err := (&Dialect{}).BuildRequest(llm.CompletionRequest{}); err == nil {
		t.Error("expected error without messages")
	}
}

func TestDialect_ParseResponse(t *testing.T) {
	d := &Dialect{}
	resp, err := d.ParseResponse([]byte(`{"model":"m","choices":[{"message":{"role":"assistant","content":"{\"a\":1}"}}],"usage":{"total_tokens":7}}`))
	if err != nil {
		t.Fatalf("ParseResponse: %v", err)
	}
	if resp.Content != `{"a":1}` || resp.Model != "m" || resp.Usage.TotalTokens != 7 {
		t.Errorf("resp = %+v", resp)
	}

	if _, err := d.ParseResponse([]byte(`{"choices":[]}`)); err == nil {
		t.Error("expected error for empty choices")
	}
}

func TestAdapter_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("auth = %q", r.Header.Get("Authorization"))
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	a, err := llm.New(llm.Config{
		Dialect: DialectName,
		BaseURL: srv.URL,
		Model:   "deepseek-chat",
		Auth:    httpclient.BearerAuth("secret"),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := llm.CompleteJSON(context.Background(), a, "sys", "usr")
	if err != nil {
		t.Fatalf("CompleteJSON: %v", err)
	}
	if out != "ok" {
		t.Errorf("out = %q", out)
	}
}
