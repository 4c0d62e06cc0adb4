// Package normalize turns a provider's textual reply into a typed value.
//
// Replies are expected to be JSON but are sometimes wrapped in a markdown
// code fence. The fence is removed, the remainder is decoded and then
// validated against the target type's `validate` tags. Anything that does not
// decode or validate cleanly is reported as a MALFORMED_RESPONSE error with the
// raw text attached; nothing is repaired.
package normalize

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kbukum/linguist/errors"
	"github.com/kbukum/linguist/validation"
)

var (
	leadingFence  = regexp.MustCompile("^```[A-Za-z0-9_+-]*[ \t]*\r?\n?")
	trailingFence = regexp.MustCompile("\r?\n?```$")
)

// StripFence removes an optional leading fence (with optional language tag)
// and an optional trailing fence.
func StripFence(raw string) string {
	s := strings.TrimSpace(raw)
	s = leadingFence.ReplaceAllString(s, "")
	s = trailingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Decode strips fencing from raw, decodes it into T and validates the result.
func Decode[T any](raw string) (T, error) {
	var out T
	body := StripFence(raw)
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		var zero T
		return zero, errors.MalformedResponse(raw, err)
	}
	if err := validation.Validate(out); err != nil {
		var zero T
		return zero, errors.MalformedResponse(raw, err)
	}
	return out, nil
}
