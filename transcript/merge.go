package transcript

import "strings"

const (
	// FillerMaxWords is the word count below which a segment may absorb its successor.
	FillerMaxWords = 4
	// FillerMaxDuration is the duration in seconds below which a segment may absorb its successor.
	FillerMaxDuration = 2.0
)

// Merge collapses short filler segments into the segment that follows them.
//
// A single left-to-right pass keeps an accumulator. While the accumulator has
// fewer than FillerMaxWords words and lasts less than FillerMaxDuration
// seconds, the next segment is folded into it: End extends, Text and
// Translation are joined with a space, and the next segment's Idiomatic and
// IdiomExplanation replace the accumulator's when non-empty. The input slice
// is not modified and order is preserved.
func Merge(segments []Segment) []Segment {
	out := make([]Segment, 0, len(segments))
	if len(segments) == 0 {
		return out
	}

	current := segments[0]
	for _, next := range segments[1:] {
		if isFiller(current) {
			current = absorb(current, next)
			continue
		}
		out = append(out, current)
		current = next
	}
	return append(out, current)
}

func isFiller(s Segment) bool {
	return len(strings.Fields(s.Text)) < FillerMaxWords && s.Duration() < FillerMaxDuration
}

func absorb(current, next Segment) Segment {
	current.End = next.End
	current.Text = current.Text + " " + next.Text
	current.Translation = current.Translation + " " + next.Translation
	if next.Idiomatic != "" {
		current.Idiomatic = next.Idiomatic
	}
	if next.IdiomExplanation != "" {
		current.IdiomExplanation = next.IdiomExplanation
	}
	return current
}
