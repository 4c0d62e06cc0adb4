package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Provider errors
const (
	// ErrCodeMissingCredential indicates a required provider key is not configured.
	ErrCodeMissingCredential ErrorCode = "MISSING_CREDENTIAL"
	// ErrCodeTransientProvider indicates a server-side provider failure (5xx, "internal error").
	ErrCodeTransientProvider ErrorCode = "TRANSIENT_PROVIDER_ERROR"
	// ErrCodePermanentProvider indicates a provider failure that retrying will not fix.
	ErrCodePermanentProvider ErrorCode = "PERMANENT_PROVIDER_ERROR"
	// ErrCodeMalformedResponse indicates provider text that does not parse as the expected structure.
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
	// ErrCodeEmptyResponse indicates a well-formed envelope without a textual payload.
	ErrCodeEmptyResponse ErrorCode = "EMPTY_RESPONSE"
	// ErrCodeNoAudioData indicates a speech response without inline audio.
	ErrCodeNoAudioData ErrorCode = "NO_AUDIO_DATA"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeStorage indicates a failure in the history backend.
	ErrCodeStorage ErrorCode = "STORAGE_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTransientProvider: true,
	ErrCodeStorage:           true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
