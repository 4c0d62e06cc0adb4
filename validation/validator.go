package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/kbukum/linguist/errors"
)

// FieldError names one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator accumulates field errors for a single request. The zero value
// is not usable; call New.
type Validator struct {
	fields []FieldError
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

// Required rejects values that are empty after trimming whitespace.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.fields = append(v.fields, FieldError{Field: field, Message: "is required"})
	}
	return v
}

// MaxLength rejects values longer than maxLen characters. Length is counted
// in runes so non-Latin learner text gets the same allowance as ASCII.
func (v *Validator) MaxLength(field, value string, maxLen int) *Validator {
	if utf8.RuneCountInString(value) > maxLen {
		v.fields = append(v.fields, FieldError{Field: field, Message: fmt.Sprintf("must be %d characters or less", maxLen)})
	}
	return v
}

// Validate returns nil when nothing was rejected.
func (v *Validator) Validate() *errors.AppError {
	if len(v.fields) == 0 {
		return nil
	}
	return fieldsError(v.fields)
}

// fieldsError folds field errors into one INVALID_INPUT error carrying
// Details["fields"].
func fieldsError(fields []FieldError) *errors.AppError {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Field + ": " + f.Message
	}
	appErr := errors.Validation(strings.Join(parts, "; "))
	appErr.Details = map[string]any{"fields": fields}
	return appErr
}

// ValidateUUID parses a history entry id.
func ValidateUUID(field, value string) (uuid.UUID, error) {
	if strings.TrimSpace(value) == "" {
		return uuid.Nil, errors.Validation(field + " is required")
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errors.Validation(field + " must be a valid UUID")
	}
	return id, nil
}
