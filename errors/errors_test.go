package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Retryable(t *testing.T) {
	if err := New(ErrCodeTransientProvider, "down", http.StatusServiceUnavailable); !err.Retryable {
		t.Error("TRANSIENT_PROVIDER_ERROR should be retryable")
	}
	if err := New(ErrCodeMalformedResponse, "bad", http.StatusBadGateway); err.Retryable {
		t.Error("MALFORMED_RESPONSE should not be retryable")
	}
}

func TestAppError_ErrorIncludesCause(t *testing.T) {
	cause := fmt.Errorf("httpclient: server (HTTP 503): HTTP 503")
	err := TransientProvider("gemini", cause)

	msg := err.Error()
	if !strings.Contains(msg, "503") {
		t.Errorf("expected status code to survive in message, got %q", msg)
	}
	if !strings.HasPrefix(msg, string(ErrCodeTransientProvider)) {
		t.Errorf("expected message to start with code, got %q", msg)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestProviderConstructors(t *testing.T) {
	tests := []struct {
		name      string
		err       *AppError
		code      ErrorCode
		status    int
		retryable bool
	}{
		{"missing credential", MissingCredential("gemini"), ErrCodeMissingCredential, http.StatusInternalServerError, false},
		{"transient", TransientProvider("gemini", nil), ErrCodeTransientProvider, http.StatusServiceUnavailable, true},
		{"permanent", PermanentProvider("gemini", nil), ErrCodePermanentProvider, http.StatusBadGateway, false},
		{"malformed", MalformedResponse("nope", nil), ErrCodeMalformedResponse, http.StatusBadGateway, false},
		{"empty", EmptyResponse("transcription"), ErrCodeEmptyResponse, http.StatusBadGateway, false},
		{"no audio", NoAudioData(), ErrCodeNoAudioData, http.StatusBadGateway, false},
		{"storage", StorageError(nil), ErrCodeStorage, http.StatusInternalServerError, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.code)
			}
			if tt.err.HTTPStatus != tt.status {
				t.Errorf("status = %d, want %d", tt.err.HTTPStatus, tt.status)
			}
			if tt.err.Retryable != tt.retryable {
				t.Errorf("retryable = %v, want %v", tt.err.Retryable, tt.retryable)
			}
		})
	}
}

func TestMalformedResponse_KeepsRaw(t *testing.T) {
	err := MalformedResponse("not json", fmt.Errorf("invalid character"))
	if err.Details["raw"] != "not json" {
		t.Errorf("expected raw text in details, got %v", err.Details["raw"])
	}
}

func TestAppError_NotFound_EmptyID(t *testing.T) {
	err := NotFound("history entry", "")
	if _, ok := err.Details["id"]; ok {
		t.Error("expected no 'id' key in details when id is empty")
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected 404, got %d", err.HTTPStatus)
	}
}

func TestAppError_WithDetail(t *testing.T) {
	err := InvalidInput("file", "is empty").WithDetail("size", 0)
	if err.Details["field"] != "file" || err.Details["size"] != 0 {
		t.Errorf("unexpected details: %v", err.Details)
	}
}

func TestAsAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("router: %w", NoAudioData())
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to unwrap")
	}
	if appErr.Code != ErrCodeNoAudioData {
		t.Errorf("expected NO_AUDIO_DATA, got %s", appErr.Code)
	}
	if !HasCode(wrapped, ErrCodeNoAudioData) {
		t.Error("HasCode should match wrapped AppError")
	}
	if HasCode(stderrors.New("plain"), ErrCodeNoAudioData) {
		t.Error("HasCode should not match plain errors")
	}
}

func TestToResponse(t *testing.T) {
	resp := EmptyResponse("definition").ToResponse()
	if resp.Error.Code != ErrCodeEmptyResponse {
		t.Errorf("expected EMPTY_RESPONSE, got %s", resp.Error.Code)
	}
	if resp.Error.Details["task"] != "definition" {
		t.Errorf("expected task detail, got %v", resp.Error.Details)
	}
}
