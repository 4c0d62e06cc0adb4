package linguist

// AudioInput is a user-supplied recording. The core never modifies it.
type AudioInput struct {
	Data        []byte
	ContentType string
	Filename    string
}

// WordDefinition explains a word in the context it was heard in.
type WordDefinition struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
	Phonetic   string `json:"phonetic,omitempty"`
}

// Accuracy buckets a pronunciation score.
type Accuracy string

// Accuracy values.
const (
	AccuracyGood    Accuracy = "good"
	AccuracyAverage Accuracy = "average"
	AccuracyPoor    Accuracy = "poor"
)

// PronunciationScore grades a learner's attempt at a reference sentence.
type PronunciationScore struct {
	Score    int      `json:"score"`
	Feedback string   `json:"feedback"`
	Accuracy Accuracy `json:"accuracy"`
}

// Speech is synthesized audio.
type Speech struct {
	MimeType string `json:"mimeType"`
	Data     []byte `json:"-"`
}

// Outcome is the terminal state of a DefineWord call.
type Outcome string

// DefineWord outcomes. Exactly one is reached per call.
const (
	OutcomeSuccess                 Outcome = "success"
	OutcomePrimaryFailedNoFallback Outcome = "primary_failed_no_fallback"
	OutcomeFallbackFailed          Outcome = "fallback_failed"
)

// Task names used in logs, spans and errors.
const (
	TaskTranscribe = "transcribe"
	TaskSpeech     = "synthesize_speech"
	TaskScore      = "score_pronunciation"
	TaskDefine     = "define_word"
)
