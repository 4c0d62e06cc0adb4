// Package transcript holds the structured result of an audio analysis and the
// post-processing applied to its segment stream.
package transcript

// Segment is a time-bounded span of speech with its translation and an
// idiomatic rewrite. End is never before Start.
type Segment struct {
	Start            float64 `json:"start"`
	End              float64 `json:"end"`
	Text             string  `json:"text"`
	Translation      string  `json:"translation"`
	Idiomatic        string  `json:"idiomatic"`
	IdiomExplanation string  `json:"idiomExplanation"`
	IsFavorite       bool    `json:"isFavorite"`
}

// Duration returns End-Start in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// Meta summarizes the recording as a whole.
type Meta struct {
	WordCount      int    `json:"wordCount"`
	EstimatedLevel string `json:"estimatedLevel"`
	Speed          string `json:"speed"`
}

// Result is a full transcription: detected language, summary and ordered segments.
type Result struct {
	Language string    `json:"language"`
	Meta     Meta      `json:"meta"`
	Segments []Segment `json:"segments"`
}
