package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/linguist/httpclient"
)

type echo struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestPost_DecodesTypedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("accept = %q", r.Header.Get("Accept"))
		}
		var in echo
		_ = json.NewDecoder(r.Body).Decode(&in)
		in.Count++
		_ = json.NewEncoder(w).Encode(in)
	}))
	defer srv.Close()

	c, err := New(httpclient.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	resp, err := Post[echo](context.Background(), c, "/echo", echo{Name: "a", Count: 1})
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if resp.Data.Name != "a" || resp.Data.Count != 2 {
		t.Errorf("data = %+v", resp.Data)
	}
	if len(resp.Raw) == 0 {
		t.Error("expected raw body")
	}
}

func TestGet_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, _ := New(httpclient.Config{BaseURL: srv.URL})
	_, err := Get[echo](context.Background(), c, "/")
	if !httpclient.IsAuth(err) {
		t.Errorf("expected auth error, got %v", err)
	}
}

func TestPost_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c, _ := New(httpclient.Config{BaseURL: srv.URL})
	_, err := Post[echo](context.Background(), c, "/", nil)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if string(decodeErr.Raw) != "not json" {
		t.Errorf("raw = %q", decodeErr.Raw)
	}
}

func TestNew_KeepsConfiguredHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/x-ndjson" {
			t.Errorf("accept = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("content-type = %q", got)
		}
		_, _ = w.Write([]byte(`{"name":"x"}`))
	}))
	defer srv.Close()

	c, _ := New(httpclient.Config{BaseURL: srv.URL, Headers: map[string]string{"Accept": "application/x-ndjson"}})
	if _, err := Post[echo](context.Background(), c, "/", echo{}); err != nil {
		t.Fatalf("Post: %v", err)
	}
}
