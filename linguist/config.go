package linguist

import (
	"github.com/kbukum/linguist/gemini"
	"github.com/kbukum/linguist/resilience"
)

// Provider names reported in errors and logs.
const (
	PrimaryProvider  = "primary"
	FallbackProvider = "fallback"
)

// Credentials are the provider keys, read once at startup. A missing primary
// key fails every task. A missing fallback key only disables the DefineWord
// fallback.
type Credentials struct {
	PrimaryKey  string
	FallbackKey string
}

// Config configures a Router.
type Config struct {
	Credentials Credentials
	// AnalysisModel handles transcription, scoring and definitions.
	AnalysisModel string
	// SpeechModel handles speech synthesis.
	SpeechModel string
	// Voice is the prebuilt voice for synthesis.
	Voice string
	// TranslationLanguage is the language segments and definitions are explained in.
	TranslationLanguage string
	// Retry governs every primary provider call.
	Retry resilience.RetryPolicy
}

// ApplyDefaults fills in models, voice, language and retry policy.
func (c *Config) ApplyDefaults() {
	if c.AnalysisModel == "" {
		c.AnalysisModel = gemini.DefaultModel
	}
	if c.SpeechModel == "" {
		c.SpeechModel = gemini.DefaultSpeechModel
	}
	if c.Voice == "" {
		c.Voice = gemini.DefaultVoice
	}
	if c.TranslationLanguage == "" {
		c.TranslationLanguage = "English"
	}
	c.Retry.ApplyDefaults()
}
