// Package audio prepares user-supplied recordings for multimodal providers:
// it picks an audio-family content type and encodes the payload for inline
// transport.
package audio

import (
	"path"
	"strings"
)

// DefaultMIME is used when neither the declared type nor the extension help.
const DefaultMIME = "audio/mp3"

var extensionMIME = map[string]string{
	"mp3":  "audio/mp3",
	"wav":  "audio/wav",
	"flac": "audio/flac",
	"m4a":  "audio/mp4",
	"aac":  "audio/aac",
	"ogg":  "audio/ogg",
	"oga":  "audio/ogg",
	"webm": "audio/webm",
	"mp4":  "audio/mp4",
}

// ResolveMIME returns the content type to send for an uploaded recording.
// A declared audio/* or video/* type is trusted verbatim. Anything else
// (empty, application/octet-stream) falls back to the filename extension,
// then to DefaultMIME.
func ResolveMIME(filename, declared string) string {
	if declared != "" && (strings.HasPrefix(declared, "audio/") || strings.HasPrefix(declared, "video/")) {
		return declared
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if mime, ok := extensionMIME[ext]; ok {
		return mime
	}
	return DefaultMIME
}
