package api

import (
	"context"
	stderrors "errors"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/linguist/audio"
	"github.com/kbukum/linguist/errors"
	"github.com/kbukum/linguist/history"
	"github.com/kbukum/linguist/linguist"
	"github.com/kbukum/linguist/logger"
	"github.com/kbukum/linguist/observability"
	"github.com/kbukum/linguist/transcript"
	"github.com/kbukum/linguist/validation"
)

// Service is the set of linguistic tasks the API exposes.
type Service interface {
	Transcribe(ctx context.Context, in linguist.AudioInput) (transcript.Result, error)
	SynthesizeSpeech(ctx context.Context, text string) (linguist.Speech, error)
	ScorePronunciation(ctx context.Context, in linguist.AudioInput, referenceText string) (linguist.PronunciationScore, error)
	DefineWord(ctx context.Context, word, sentence string) (linguist.WordDefinition, error)
}

// historySaveTimeout bounds a background history write.
const historySaveTimeout = 30 * time.Second

// Handler serves the HTTP API.
type Handler struct {
	svc     Service
	history history.Store
	health  []observability.HealthChecker
	service string
	version string
	log     *logger.Logger
	pending sync.WaitGroup
}

// Option configures a Handler.
type Option func(*Handler)

// WithHealthCheckers adds components reported by /health.
func WithHealthCheckers(checkers ...observability.HealthChecker) Option {
	return func(h *Handler) { h.health = append(h.health, checkers...) }
}

// WithServiceInfo sets the name and version reported by /health.
func WithServiceInfo(name, version string) Option {
	return func(h *Handler) {
		h.service = name
		h.version = version
	}
}

// WithLogger sets the handler logger.
func WithLogger(l *logger.Logger) Option {
	return func(h *Handler) { h.log = l }
}

// NewHandler creates a Handler. store may be nil, which disables history.
func NewHandler(svc Service, store history.Store, opts ...Option) *Handler {
	h := &Handler{
		svc:     svc,
		history: store,
		service: "linguist",
		log:     logger.WithComponent("api"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts every route on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", h.Health)

	v1 := r.Group("/api/v1")
	v1.POST("/transcriptions", h.Transcribe)
	v1.POST("/speech", h.Speech)
	v1.POST("/pronunciation", h.Pronunciation)
	v1.POST("/definitions", h.Define)

	if h.history != nil {
		v1.GET("/history", h.ListHistory)
		v1.GET("/history/:id/audio", h.HistoryAudio)
		v1.DELETE("/history/:id", h.DeleteHistory)
	}
}

// Wait blocks until background history writes have finished.
func (h *Handler) Wait() {
	h.pending.Wait()
}

// Transcribe handles POST /api/v1/transcriptions.
func (h *Handler) Transcribe(c *gin.Context) {
	in, err := readAudio(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	result, err := h.svc.Transcribe(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.saveHistory(c.Request.Context(), in, result)
	respondOK(c, result)
}

// saveHistory stores the transcription without holding up the response.
// Failures are logged only.
func (h *Handler) saveHistory(ctx context.Context, in linguist.AudioInput, result transcript.Result) {
	if h.history == nil {
		return
	}
	rec := history.Recording{
		Data:     in.Data,
		FileName: in.Filename,
		MimeType: audio.ResolveMIME(in.Filename, in.ContentType),
	}
	log := h.log.WithContext(ctx)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historySaveTimeout)

	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		defer cancel()
		entry, err := h.history.Save(ctx, rec, result)
		if err != nil {
			log.Warn("saving history failed", logger.Fields(logger.FieldError, err.Error()))
			return
		}
		log.Debug("history saved", logger.Fields("id", entry.ID))
	}()
}

// Input limits for free text sent to the providers.
const (
	maxTextLength = 5000
	maxWordLength = 100
)

type speechRequest struct {
	Text string `json:"text"`
}

// Speech handles POST /api/v1/speech and answers with raw audio.
func (h *Handler) Speech(c *gin.Context) {
	var req speechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, bindError(err))
		return
	}
	v := validation.New().
		Required("text", req.Text).
		MaxLength("text", req.Text, maxTextLength)
	if verr := v.Validate(); verr != nil {
		respondError(c, h.log, verr)
		return
	}

	speech, err := h.svc.SynthesizeSpeech(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Data(http.StatusOK, speech.MimeType, speech.Data)
}

// Pronunciation handles POST /api/v1/pronunciation.
func (h *Handler) Pronunciation(c *gin.Context) {
	text := c.PostForm("text")
	v := validation.New().
		Required("text", text).
		MaxLength("text", text, maxTextLength)
	if verr := v.Validate(); verr != nil {
		respondError(c, h.log, verr)
		return
	}
	in, err := readAudio(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	score, err := h.svc.ScorePronunciation(c.Request.Context(), in, text)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, score)
}

type defineRequest struct {
	Word    string `json:"word"`
	Context string `json:"context"`
}

// Define handles POST /api/v1/definitions.
func (h *Handler) Define(c *gin.Context) {
	var req defineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, bindError(err))
		return
	}
	v := validation.New().
		Required("word", req.Word).
		MaxLength("word", req.Word, maxWordLength).
		MaxLength("context", req.Context, maxTextLength)
	if verr := v.Validate(); verr != nil {
		respondError(c, h.log, verr)
		return
	}

	def, err := h.svc.DefineWord(c.Request.Context(), req.Word, req.Context)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, def)
}

// ListHistory handles GET /api/v1/history.
func (h *Handler) ListHistory(c *gin.Context) {
	entries, err := h.history.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, entries)
}

// HistoryAudio handles GET /api/v1/history/:id/audio.
func (h *Handler) HistoryAudio(c *gin.Context) {
	rec, err := h.history.Audio(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	mime := rec.MimeType
	if mime == "" {
		mime = "application/octet-stream"
	}
	c.Data(http.StatusOK, mime, rec.Data)
}

// DeleteHistory handles DELETE /api/v1/history/:id.
func (h *Handler) DeleteHistory(c *gin.Context) {
	if err := h.history.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	report := observability.CheckAll(c.Request.Context(), h.service, h.version, h.health...)
	status := http.StatusOK
	if report.Status == observability.HealthStatusDown {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}

// readAudio reads the multipart "file" field.
func readAudio(c *gin.Context) (linguist.AudioInput, error) {
	header, err := c.FormFile("file")
	if err != nil {
		if isTooLarge(err) {
			return linguist.AudioInput{}, err
		}
		return linguist.AudioInput{}, errors.MissingField("file")
	}
	data, err := readPart(header)
	if err != nil {
		return linguist.AudioInput{}, err
	}
	if len(data) == 0 {
		return linguist.AudioInput{}, errors.InvalidInput("file", "the uploaded file is empty")
	}
	return linguist.AudioInput{
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
	}, nil
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, errors.Internal(err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

// bindError keeps an oversized body distinct from a malformed one.
func bindError(err error) error {
	if isTooLarge(err) {
		return err
	}
	return errors.Validation("request body must be JSON").WithCause(err)
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return stderrors.As(err, &maxErr)
}
