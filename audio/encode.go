package audio

import (
	"encoding/base64"
	"fmt"
	"io"
)

// Encode returns the standard base64 encoding of data.
func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// EncodeReader reads r to the end and base64-encodes the content.
func EncodeReader(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("audio: read: %w", err)
	}
	return Encode(data), nil
}

// decoders are tried in order; padded standard base64 is what Encode emits.
var decoders = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// Decode reverses Encode. Inline audio from a provider may also arrive
// unpadded or in the URL-safe alphabet.
func Decode(s string) ([]byte, error) {
	var firstErr error
	for _, enc := range decoders {
		data, err := enc.DecodeString(s)
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, fmt.Errorf("audio: decode base64: %w", firstErr)
}
