package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/linguist/errors"
	"github.com/kbukum/linguist/history"
	"github.com/kbukum/linguist/httpclient"
	"github.com/kbukum/linguist/linguist"
	"github.com/kbukum/linguist/logger"
	"github.com/kbukum/linguist/observability"
	"github.com/kbukum/linguist/storage/local"
	"github.com/kbukum/linguist/transcript"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeService struct {
	result     transcript.Result
	speech     linguist.Speech
	score      linguist.PronunciationScore
	definition linguist.WordDefinition
	err        error

	lastAudio linguist.AudioInput
	lastText  string
	lastWord  string
}

func (f *fakeService) Transcribe(_ context.Context, in linguist.AudioInput) (transcript.Result, error) {
	f.lastAudio = in
	return f.result, f.err
}

func (f *fakeService) SynthesizeSpeech(_ context.Context, text string) (linguist.Speech, error) {
	f.lastText = text
	return f.speech, f.err
}

func (f *fakeService) ScorePronunciation(_ context.Context, in linguist.AudioInput, ref string) (linguist.PronunciationScore, error) {
	f.lastAudio, f.lastText = in, ref
	return f.score, f.err
}

func (f *fakeService) DefineWord(_ context.Context, word, sentence string) (linguist.WordDefinition, error) {
	f.lastWord, f.lastText = word, sentence
	return f.definition, f.err
}

type staticHealth observability.Health

func (s staticHealth) CheckHealth(context.Context) observability.Health { return observability.Health(s) }

func newTestAPI(t *testing.T, svc Service, opts ...Option) (*gin.Engine, *Handler, history.Store) {
	t.Helper()
	s, err := local.New(local.Config{BasePath: t.TempDir()})
	if err != nil {
		t.Fatalf("local.New: %v", err)
	}
	store := history.NewStorageStore(s)
	h := NewHandler(svc, store, append([]Option{WithLogger(logger.NewNop())}, opts...)...)
	r := gin.New()
	h.Register(r)
	return r, h, store
}

func multipartBody(t *testing.T, fields map[string]string, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		w.WriteField(k, v)
	}
	if filename != "" {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
		hdr.Set("Content-Type", contentType)
		part, err := w.CreatePart(hdr)
		if err != nil {
			t.Fatalf("CreatePart: %v", err)
		}
		part.Write(data)
	}
	w.Close()
	return &buf, w.FormDataContentType()
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errors.ErrorBody {
	t.Helper()
	var body errors.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", rr.Body.String(), err)
	}
	return body.Error
}

func TestTranscribe_HistoryStoresResolvedMIME(t *testing.T) {
	svc := &fakeService{result: transcript.Result{Language: "de", Meta: transcript.Meta{EstimatedLevel: "A2", Speed: "normal"}}}
	r, h, store := newTestAPI(t, svc)

	body, ct := multipartBody(t, nil, "lesson.ogg", "application/octet-stream", []byte("ogg-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcriptions", body)
	req.Header.Set("Content-Type", ct)
	if rr := do(r, req); rr.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body)
	}

	h.Wait()
	entries, err := store.GetAll(context.Background())
	if err != nil || len(entries) != 1 {
		t.Fatalf("history = %+v, %v", entries, err)
	}
	if entries[0].MimeType != "audio/ogg" {
		t.Errorf("stored mime = %q, want audio/ogg", entries[0].MimeType)
	}
	rr := do(r, httptest.NewRequest(http.MethodGet, "/api/v1/history/"+entries[0].ID+"/audio", nil))
	if got := rr.Header().Get("Content-Type"); got != "audio/ogg" {
		t.Errorf("audio content-type = %q", got)
	}
}

func TestTranscribe_SavesHistory(t *testing.T) {
	svc := &fakeService{result: transcript.Result{
		Language: "es",
		Meta:     transcript.Meta{WordCount: 2, EstimatedLevel: "A1", Speed: "slow"},
		Segments: []transcript.Segment{{Start: 0, End: 3, Text: "hola amigo", Translation: "hello friend"}},
	}}
	r, h, store := newTestAPI(t, svc)

	body, ct := multipartBody(t, nil, "clip.m4a", "audio/mp4", []byte("audio-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcriptions", body)
	req.Header.Set("Content-Type", ct)
	rr := do(r, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body)
	}
	var resp struct {
		Data transcript.Result `json:"data"`
	}
	json.Unmarshal(rr.Body.Bytes(), &resp)
	if resp.Data.Language != "es" || len(resp.Data.Segments) != 1 {
		t.Errorf("response = %+v", resp.Data)
	}
	if svc.lastAudio.Filename != "clip.m4a" || svc.lastAudio.ContentType != "audio/mp4" || string(svc.lastAudio.Data) != "audio-bytes" {
		t.Errorf("audio input = %+v", svc.lastAudio)
	}

	h.Wait()
	entries, err := store.GetAll(context.Background())
	if err != nil || len(entries) != 1 {
		t.Fatalf("history = %+v, %v", entries, err)
	}
	if entries[0].FileName != "clip.m4a" || entries[0].Result.Language != "es" || entries[0].MimeType != "audio/mp4" {
		t.Errorf("entry = %+v", entries[0])
	}

	// Listing, audio retrieval and deletion round out the history routes.
	rr = do(r, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), entries[0].ID) {
		t.Errorf("list: %d %s", rr.Code, rr.Body)
	}
	rr = do(r, httptest.NewRequest(http.MethodGet, "/api/v1/history/"+entries[0].ID+"/audio", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "audio-bytes" || rr.Header().Get("Content-Type") != "audio/mp4" {
		t.Errorf("audio: %d %q %q", rr.Code, rr.Body, rr.Header().Get("Content-Type"))
	}
	rr = do(r, httptest.NewRequest(http.MethodDelete, "/api/v1/history/"+entries[0].ID, nil))
	if rr.Code != http.StatusNoContent {
		t.Errorf("delete: %d", rr.Code)
	}
	rr = do(r, httptest.NewRequest(http.MethodDelete, "/api/v1/history/"+entries[0].ID, nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("second delete: %d", rr.Code)
	}
}

func TestTranscribe_FailureDoesNotSaveHistory(t *testing.T) {
	svc := &fakeService{err: errors.MalformedResponse("nope", stderrors.New("invalid character"))}
	r, h, store := newTestAPI(t, svc)

	body, ct := multipartBody(t, nil, "clip.mp3", "audio/mpeg", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcriptions", body)
	req.Header.Set("Content-Type", ct)
	rr := do(r, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rr.Code)
	}
	if e := decodeError(t, rr); e.Code != errors.ErrCodeMalformedResponse || e.Details["category"] != CategoryUnknown {
		t.Errorf("error = %+v", e)
	}
	h.Wait()
	if entries, _ := store.GetAll(context.Background()); len(entries) != 0 {
		t.Errorf("history should be empty, got %d", len(entries))
	}
}

func TestTranscribe_RequiresFile(t *testing.T) {
	r, _, _ := newTestAPI(t, &fakeService{})

	tests := []struct {
		name string
		data []byte
		file string
		code errors.ErrorCode
	}{
		{"missing", nil, "", errors.ErrCodeMissingField},
		{"empty", []byte{}, "clip.mp3", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, ct := multipartBody(t, nil, tt.file, "audio/mpeg", tt.data)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/transcriptions", body)
			req.Header.Set("Content-Type", ct)
			rr := do(r, req)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", rr.Code)
			}
			if e := decodeError(t, rr); e.Code != tt.code {
				t.Errorf("code = %s, want %s", e.Code, tt.code)
			}
		})
	}
}

func TestSpeech(t *testing.T) {
	svc := &fakeService{speech: linguist.Speech{MimeType: "audio/L16;codec=pcm;rate=24000", Data: []byte{1, 2, 3}}}
	r, _, _ := newTestAPI(t, svc)

	rr := do(r, httptest.NewRequest(http.MethodPost, "/api/v1/speech", strings.NewReader(`{"text":"hola"}`)))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "audio/L16;codec=pcm;rate=24000" || rr.Body.Len() != 3 {
		t.Errorf("content-type %q, %d bytes", rr.Header().Get("Content-Type"), rr.Body.Len())
	}
	if svc.lastText != "hola" {
		t.Errorf("text = %q", svc.lastText)
	}

	rr = do(r, httptest.NewRequest(http.MethodPost, "/api/v1/speech", strings.NewReader(`{}`)))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("missing text: status = %d", rr.Code)
	}
}

func TestSpeech_NoAudio(t *testing.T) {
	r, _, _ := newTestAPI(t, &fakeService{err: errors.NoAudioData()})
	rr := do(r, httptest.NewRequest(http.MethodPost, "/api/v1/speech", strings.NewReader(`{"text":"hola"}`)))
	if e := decodeError(t, rr); e.Code != errors.ErrCodeNoAudioData {
		t.Errorf("code = %s", e.Code)
	}
}

func TestPronunciation(t *testing.T) {
	svc := &fakeService{score: linguist.PronunciationScore{Score: 77, Feedback: "ok", Accuracy: linguist.AccuracyAverage}}
	r, _, _ := newTestAPI(t, svc)

	body, ct := multipartBody(t, map[string]string{"text": "buenos días"}, "rec.webm", "audio/webm", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pronunciation", body)
	req.Header.Set("Content-Type", ct)
	rr := do(r, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body)
	}
	if !strings.Contains(rr.Body.String(), `"accuracy":"average"`) {
		t.Errorf("body = %s", rr.Body)
	}
	if svc.lastText != "buenos días" {
		t.Errorf("reference = %q", svc.lastText)
	}

	body, ct = multipartBody(t, nil, "rec.webm", "audio/webm", []byte("x"))
	req = httptest.NewRequest(http.MethodPost, "/api/v1/pronunciation", body)
	req.Header.Set("Content-Type", ct)
	if rr := do(r, req); rr.Code != http.StatusBadRequest {
		t.Errorf("missing text: status = %d", rr.Code)
	}
}

func TestDefine(t *testing.T) {
	svc := &fakeService{definition: linguist.WordDefinition{Word: "sí", Definition: "yes", Example: "Sí, claro."}}
	r, _, _ := newTestAPI(t, svc)

	rr := do(r, httptest.NewRequest(http.MethodPost, "/api/v1/definitions", strings.NewReader(`{"word":"sí","context":"creo que sí"}`)))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if svc.lastWord != "sí" || svc.lastText != "creo que sí" {
		t.Errorf("word %q context %q", svc.lastWord, svc.lastText)
	}
	if strings.Contains(rr.Body.String(), "phonetic") {
		t.Error("empty phonetic should be omitted")
	}
}

func TestInputValidation(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		body  string
		field string
	}{
		{"blank text", "/api/v1/speech", `{"text":"   "}`, "text"},
		{"text too long", "/api/v1/speech", `{"text":"` + strings.Repeat("a", maxTextLength+1) + `"}`, "text"},
		{"missing word", "/api/v1/definitions", `{"context":"x"}`, "word"},
		{"word too long", "/api/v1/definitions", `{"word":"` + strings.Repeat("a", maxWordLength+1) + `"}`, "word"},
	}
	svc := &fakeService{}
	r, _, _ := newTestAPI(t, svc)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(r, httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body)))
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", rr.Code)
			}
			e := decodeError(t, rr)
			if e.Code != errors.ErrCodeInvalidInput {
				t.Errorf("code = %s", e.Code)
			}
			if !strings.Contains(e.Message, tt.field) {
				t.Errorf("message %q should name %s", e.Message, tt.field)
			}
		})
	}

	rr := do(r, httptest.NewRequest(http.MethodPost, "/api/v1/speech", strings.NewReader(`not json`)))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("malformed body: status = %d", rr.Code)
	}
	if svc.lastText != "" || svc.lastWord != "" {
		t.Error("invalid input must not reach the service")
	}
}

func TestErrorCategories(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		category string
	}{
		{"missing key", errors.MissingCredential("primary"), http.StatusInternalServerError, CategoryAuthentication},
		{"bad key", errors.PermanentProvider("primary", httpclient.ClassifyStatusCode(401, []byte("API key not valid"))), http.StatusBadGateway, CategoryAuthentication},
		{"overloaded", errors.TransientProvider("primary", httpclient.ClassifyStatusCode(503, nil)), http.StatusServiceUnavailable, CategoryServiceUnavailable},
		{"connection", errors.TransientProvider("primary", httpclient.NewConnectionError(stderrors.New("dial tcp: refused"))), http.StatusServiceUnavailable, CategoryNetwork},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, CategoryNetwork},
		{"other", errors.PermanentProvider("fallback", stderrors.New("HTTP 402 insufficient balance")), http.StatusBadGateway, CategoryUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestAPI(t, &fakeService{err: tt.err})
			rr := do(r, httptest.NewRequest(http.MethodPost, "/api/v1/definitions", strings.NewReader(`{"word":"x"}`)))
			if rr.Code != tt.status {
				t.Errorf("status = %d, want %d", rr.Code, tt.status)
			}
			if e := decodeError(t, rr); e.Details["category"] != tt.category {
				t.Errorf("category = %v, want %s", e.Details["category"], tt.category)
			}
		})
	}
}

func TestErrorCategory_DoesNotMutateSharedError(t *testing.T) {
	shared := errors.MissingCredential("primary")
	r, _, _ := newTestAPI(t, &fakeService{err: shared})
	do(r, httptest.NewRequest(http.MethodPost, "/api/v1/definitions", strings.NewReader(`{"word":"x"}`)))
	if _, ok := shared.Details["category"]; ok {
		t.Error("response detail leaked into the original error")
	}
}

func TestHistory_InvalidID(t *testing.T) {
	r, _, _ := newTestAPI(t, &fakeService{})
	rr := do(r, httptest.NewRequest(http.MethodGet, "/api/v1/history/not-a-uuid/audio", nil))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rr.Code)
	}
}

func TestHealth(t *testing.T) {
	up := staticHealth{Name: "providers", Status: observability.HealthStatusUp}
	down := staticHealth{Name: "providers", Status: observability.HealthStatusDown}

	r, _, _ := newTestAPI(t, &fakeService{}, WithHealthCheckers(up), WithServiceInfo("linguist", "1.2.3"))
	rr := do(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"version":"1.2.3"`) {
		t.Errorf("healthy: %d %s", rr.Code, rr.Body)
	}

	r, _, _ = newTestAPI(t, &fakeService{}, WithHealthCheckers(up, down))
	rr = do(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusServiceUnavailable || !strings.Contains(rr.Body.String(), `"status":"down"`) {
		t.Errorf("unhealthy: %d %s", rr.Code, rr.Body)
	}
}

func TestRegister_WithoutHistory(t *testing.T) {
	h := NewHandler(&fakeService{}, nil, WithLogger(logger.NewNop()))
	r := gin.New()
	h.Register(r)
	rr := do(r, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d", rr.Code)
	}
}
