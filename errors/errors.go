package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error. The cause is always
// included so that status codes and provider messages stay visible to callers
// that classify errors by their text.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Provider errors ---

// MissingCredential reports that the key for provider is not configured.
func MissingCredential(provider string) *AppError {
	return &AppError{
		Code: ErrCodeMissingCredential, Message: fmt.Sprintf("No API key configured for the %s provider.", provider),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"provider": provider},
	}
}

// TransientProvider wraps a server-side provider failure that survived all retries.
func TransientProvider(provider string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTransientProvider, Message: fmt.Sprintf("The %s provider is temporarily unavailable.", provider),
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"provider": provider}, Cause: cause,
	}
}

// PermanentProvider wraps a provider failure that is not worth retrying
// (authentication, quota, malformed request).
func PermanentProvider(provider string, cause error) *AppError {
	return &AppError{
		Code: ErrCodePermanentProvider, Message: fmt.Sprintf("The %s provider rejected the request.", provider),
		HTTPStatus: http.StatusBadGateway, Retryable: false,
		Details: map[string]any{"provider": provider}, Cause: cause,
	}
}

// MalformedResponse reports provider text that could not be parsed into the
// expected structure. The raw text is kept for diagnostics.
func MalformedResponse(raw string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeMalformedResponse, Message: "The provider returned a response that could not be parsed.",
		HTTPStatus: http.StatusBadGateway, Retryable: false,
		Details: map[string]any{"raw": raw}, Cause: cause,
	}
}

// EmptyResponse reports a provider reply without any textual payload.
func EmptyResponse(task string) *AppError {
	return &AppError{
		Code: ErrCodeEmptyResponse, Message: fmt.Sprintf("The provider returned no content for %s.", task),
		HTTPStatus: http.StatusBadGateway, Retryable: false,
		Details: map[string]any{"task": task},
	}
}

// NoAudioData reports a speech reply without inline audio.
func NoAudioData() *AppError {
	return &AppError{
		Code: ErrCodeNoAudioData, Message: "The provider returned no audio data.",
		HTTPStatus: http.StatusBadGateway, Retryable: false,
	}
}

// --- Common error constructors ---

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Retryable: false, Details: details,
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"field": field},
	}
}

// Internal creates a new AppError for an internal server error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred. Please try again.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}

// StorageError wraps a history backend failure.
func StorageError(cause error) *AppError {
	return &AppError{
		Code: ErrCodeStorage, Message: "The history store encountered an error.",
		HTTPStatus: http.StatusInternalServerError, Retryable: true, Cause: cause,
	}
}
