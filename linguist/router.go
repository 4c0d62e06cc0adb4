package linguist

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/kbukum/linguist/audio"
	"github.com/kbukum/linguist/errors"
	"github.com/kbukum/linguist/gemini"
	"github.com/kbukum/linguist/httpclient/rest"
	"github.com/kbukum/linguist/llm"
	"github.com/kbukum/linguist/logger"
	"github.com/kbukum/linguist/normalize"
	"github.com/kbukum/linguist/observability"
	"github.com/kbukum/linguist/provider"
	"github.com/kbukum/linguist/resilience"
	"github.com/kbukum/linguist/transcript"
)

// Primary is the multimodal provider.
type Primary = provider.RequestResponse[gemini.GenerateRequest, gemini.GenerateResponse]

// Fallback is the text-only provider used by DefineWord.
type Fallback = provider.RequestResponse[llm.CompletionRequest, llm.CompletionResponse]

// pronunciationMIME is the container browsers record microphone input in.
const pronunciationMIME = "audio/webm"

// Router runs the linguistic tasks against the configured providers. It
// holds only read-only state and is safe for concurrent use.
type Router struct {
	cfg      Config
	primary  Primary
	fallback Fallback
	log      *logger.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router logger.
func WithLogger(l *logger.Logger) Option {
	return func(r *Router) { r.log = l }
}

// NewRouter creates a Router. fallback may be nil, which disables the
// DefineWord fallback just like an empty fallback key.
func NewRouter(cfg Config, primary Primary, fallback Fallback, opts ...Option) *Router {
	cfg.ApplyDefaults()
	r := &Router{
		cfg:      cfg,
		primary:  primary,
		fallback: fallback,
		log:      logger.WithComponent("router"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FallbackConfigured reports whether DefineWord may use the fallback provider.
func (r *Router) FallbackConfigured() bool {
	return r.cfg.Credentials.FallbackKey != "" && r.fallback != nil
}

// Transcribe transcribes, translates and segments a recording. Short filler
// segments are merged into their successors.
func (r *Router) Transcribe(ctx context.Context, in AudioInput) (transcript.Result, error) {
	ctx, span := observability.StartSpan(ctx, "linguist."+TaskTranscribe)
	defer span.End()

	result, err := r.transcribe(ctx, in)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return transcript.Result{}, err
	}
	observability.SetSpanAttribute(ctx, "segments", len(result.Segments))
	return result, nil
}

func (r *Router) transcribe(ctx context.Context, in AudioInput) (transcript.Result, error) {
	if err := r.requirePrimary(); err != nil {
		return transcript.Result{}, err
	}

	mime := audio.ResolveMIME(in.Filename, in.ContentType)
	req := gemini.GenerateRequest{
		Model:             r.cfg.AnalysisModel,
		SystemInstruction: systemContent(transcribeInstruction(r.cfg.TranslationLanguage)),
		Contents: []gemini.Content{{
			Role:  "user",
			Parts: []gemini.Part{gemini.InlinePart(mime, audio.Encode(in.Data)), gemini.TextPart(transcribeUser)},
		}},
		GenerationConfig: jsonOutput(transcriptionSchema),
	}

	text, err := r.generateText(ctx, TaskTranscribe, req)
	if err != nil {
		return transcript.Result{}, err
	}

	wire, err := normalize.Decode[transcriptionWire](text)
	if err != nil {
		return transcript.Result{}, err
	}
	result, err := wire.result()
	if err != nil {
		return transcript.Result{}, errors.MalformedResponse(text, err)
	}

	before := len(result.Segments)
	result.Segments = transcript.Merge(result.Segments)
	r.log.WithContext(ctx).Debug("transcription complete", logger.Fields(
		logger.FieldTask, TaskTranscribe,
		"mime_type", mime,
		"segments_raw", before,
		"segments", len(result.Segments),
	))
	return result, nil
}

// SynthesizeSpeech renders text as audio.
func (r *Router) SynthesizeSpeech(ctx context.Context, text string) (Speech, error) {
	ctx, span := observability.StartSpan(ctx, "linguist."+TaskSpeech)
	defer span.End()

	speech, err := r.synthesize(ctx, text)
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	return speech, err
}

func (r *Router) synthesize(ctx context.Context, text string) (Speech, error) {
	if err := r.requirePrimary(); err != nil {
		return Speech{}, err
	}

	req := gemini.GenerateRequest{
		Model: r.cfg.SpeechModel,
		Contents: []gemini.Content{{
			Role:  "user",
			Parts: []gemini.Part{gemini.TextPart(speechUser(text))},
		}},
		GenerationConfig: &gemini.GenerationConfig{
			ResponseModalities: []string{gemini.ModalityAudio},
			SpeechConfig: &gemini.SpeechConfig{
				VoiceConfig: gemini.VoiceConfig{
					PrebuiltVoiceConfig: gemini.PrebuiltVoiceConfig{VoiceName: r.cfg.Voice},
				},
			},
		},
	}

	resp, err := r.generate(ctx, TaskSpeech, req)
	if err != nil {
		return Speech{}, err
	}

	inline := resp.FirstInlineData()
	if inline == nil || inline.Data == "" {
		return Speech{}, errors.NoAudioData()
	}
	data, err := audio.Decode(inline.Data)
	if err != nil {
		return Speech{}, errors.MalformedResponse(inline.Data, err)
	}
	return Speech{MimeType: inline.MimeType, Data: data}, nil
}

// ScorePronunciation grades a recording of the learner reading referenceText.
func (r *Router) ScorePronunciation(ctx context.Context, in AudioInput, referenceText string) (PronunciationScore, error) {
	ctx, span := observability.StartSpan(ctx, "linguist."+TaskScore)
	defer span.End()

	score, err := r.score(ctx, in, referenceText)
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	return score, err
}

func (r *Router) score(ctx context.Context, in AudioInput, referenceText string) (PronunciationScore, error) {
	if err := r.requirePrimary(); err != nil {
		return PronunciationScore{}, err
	}

	req := gemini.GenerateRequest{
		Model:             r.cfg.AnalysisModel,
		SystemInstruction: systemContent(scoreInstruction(r.cfg.TranslationLanguage)),
		Contents: []gemini.Content{{
			Role:  "user",
			Parts: []gemini.Part{gemini.InlinePart(pronunciationMIME, audio.Encode(in.Data)), gemini.TextPart(scoreUser(referenceText))},
		}},
		GenerationConfig: jsonOutput(pronunciationSchema),
	}

	text, err := r.generateText(ctx, TaskScore, req)
	if err != nil {
		return PronunciationScore{}, err
	}
	wire, err := normalize.Decode[scoreWire](text)
	if err != nil {
		return PronunciationScore{}, err
	}
	return wire.score(), nil
}

// DefineWord explains word as used in sentence. After any primary failure
// the fallback provider is asked once, when configured, and its error is the
// one returned if it fails too. A missing primary key never falls back.
func (r *Router) DefineWord(ctx context.Context, word, sentence string) (WordDefinition, error) {
	ctx, span := observability.StartSpan(ctx, "linguist."+TaskDefine)
	defer span.End()

	def, outcome, err := r.define(ctx, word, sentence)
	observability.SetSpanAttribute(ctx, "outcome", string(outcome))
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	return def, err
}

func (r *Router) define(ctx context.Context, word, sentence string) (WordDefinition, Outcome, error) {
	log := r.log.WithContext(ctx).WithFields(logger.Fields(logger.FieldTask, TaskDefine))

	if err := r.requirePrimary(); err != nil {
		log.Warn("define word failed", logger.Fields("outcome", OutcomePrimaryFailedNoFallback, logger.FieldError, err.Error()))
		return WordDefinition{}, OutcomePrimaryFailedNoFallback, err
	}

	def, err := r.definePrimary(ctx, word, sentence)
	if err == nil {
		log.Debug("define word done", logger.Fields("outcome", OutcomeSuccess, logger.FieldProvider, PrimaryProvider))
		return def, OutcomeSuccess, nil
	}

	if !r.FallbackConfigured() {
		log.Warn("define word failed", logger.Fields("outcome", OutcomePrimaryFailedNoFallback, logger.FieldError, err.Error()))
		return WordDefinition{}, OutcomePrimaryFailedNoFallback, err
	}

	log.Warn("primary provider failed, using fallback", logger.Fields(logger.FieldError, err.Error()))
	def, ferr := r.defineFallback(ctx, word, sentence)
	if ferr != nil {
		log.Warn("define word failed", logger.Fields("outcome", OutcomeFallbackFailed, logger.FieldError, ferr.Error()))
		return WordDefinition{}, OutcomeFallbackFailed, ferr
	}
	log.Info("define word done", logger.Fields("outcome", OutcomeSuccess, logger.FieldProvider, FallbackProvider))
	return def, OutcomeSuccess, nil
}

func (r *Router) definePrimary(ctx context.Context, word, sentence string) (WordDefinition, error) {
	req := gemini.GenerateRequest{
		Model:             r.cfg.AnalysisModel,
		SystemInstruction: systemContent(defineInstruction(r.cfg.TranslationLanguage)),
		Contents: []gemini.Content{{
			Role:  "user",
			Parts: []gemini.Part{gemini.TextPart(defineUser(word, sentence))},
		}},
		GenerationConfig: jsonOutput(definitionSchema),
	}

	text, err := r.generateText(ctx, TaskDefine, req)
	if err != nil {
		return WordDefinition{}, err
	}
	wire, err := normalize.Decode[definitionWire](text)
	if err != nil {
		return WordDefinition{}, err
	}
	return wire.definition(), nil
}

func (r *Router) defineFallback(ctx context.Context, word, sentence string) (WordDefinition, error) {
	text, err := llm.CompleteJSON(ctx, r.fallback, defineFallbackInstruction(r.cfg.TranslationLanguage), defineUser(word, sentence))
	if err != nil {
		return WordDefinition{}, providerError(FallbackProvider, err)
	}
	if strings.TrimSpace(text) == "" {
		return WordDefinition{}, errors.EmptyResponse(TaskDefine)
	}
	wire, err := normalize.Decode[definitionWire](text)
	if err != nil {
		return WordDefinition{}, err
	}
	return wire.definition(), nil
}

// generate issues one retried primary call.
func (r *Router) generate(ctx context.Context, task string, req gemini.GenerateRequest) (gemini.GenerateResponse, error) {
	policy := r.cfg.Retry
	policy.OnRetry = r.retryHook(ctx, task, policy.OnRetry)

	resp, err := resilience.Retry(ctx, policy, func() (gemini.GenerateResponse, error) {
		return r.primary.Execute(ctx, req)
	})
	if err != nil {
		return gemini.GenerateResponse{}, providerError(PrimaryProvider, err)
	}
	return resp, nil
}

// generateText is generate for tasks that expect a textual reply.
func (r *Router) generateText(ctx context.Context, task string, req gemini.GenerateRequest) (string, error) {
	resp, err := r.generate(ctx, task, req)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", errors.EmptyResponse(task)
	}
	return text, nil
}

func (r *Router) retryHook(ctx context.Context, task string, next func(int, error, time.Duration)) func(int, error, time.Duration) {
	return func(attempt int, err error, delay time.Duration) {
		observability.SetSpanAttribute(ctx, "retries", attempt)
		r.log.WithContext(ctx).Debug("retrying provider call", logger.Fields(
			logger.FieldTask, task,
			logger.FieldAttempt, attempt,
		))
		if next != nil {
			next(attempt, err, delay)
		}
	}
}

func (r *Router) requirePrimary() error {
	if r.cfg.Credentials.PrimaryKey == "" || r.primary == nil {
		return errors.MissingCredential(PrimaryProvider)
	}
	return nil
}

// providerError classifies a final provider failure. Context errors pass
// through unchanged.
func providerError(name string, err error) error {
	if resilience.IsContextError(err) {
		return err
	}
	if _, ok := errors.AsAppError(err); ok {
		return err
	}
	var decodeErr *rest.DecodeError
	if stderrors.As(err, &decodeErr) {
		return errors.MalformedResponse(string(decodeErr.Raw), err)
	}
	if resilience.IsServerSideFailure(err) {
		return errors.TransientProvider(name, err)
	}
	return errors.PermanentProvider(name, err)
}

func systemContent(text string) *gemini.Content {
	return &gemini.Content{Parts: []gemini.Part{gemini.TextPart(text)}}
}

func jsonOutput(schema *gemini.Schema) *gemini.GenerationConfig {
	return &gemini.GenerationConfig{
		ResponseMimeType: "application/json",
		ResponseSchema:   schema,
	}
}
