package history

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/linguist/transcript"
	"github.com/kbukum/linguist/validation"
)

// Entry is one saved transcription.
type Entry struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	FileName  string            `json:"fileName"`
	MimeType  string            `json:"mimeType"`
	Result    transcript.Result `json:"result"`
}

// Recording is the audio an entry was produced from.
type Recording struct {
	Data     []byte
	FileName string
	MimeType string
}

// Store persists history entries.
type Store interface {
	// Save stores rec and result as a new entry.
	Save(ctx context.Context, rec Recording, result transcript.Result) (Entry, error)
	// GetAll returns every entry, newest first.
	GetAll(ctx context.Context) ([]Entry, error)
	// Audio returns the recording saved with entry id.
	Audio(ctx context.Context, id string) (Recording, error)
	// Delete removes entry id and its recording.
	Delete(ctx context.Context, id string) error
}

// Option configures a store.
type Option func(*options)

type options struct {
	now     func() time.Time
	newID   func() string
	backend string
}

// WithClock overrides the clock used for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithBackendName sets the backend label reported by CheckHealth.
func WithBackendName(name string) Option {
	return func(o *options) { o.backend = name }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, newID: uuid.NewString, backend: "storage"}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) newEntry(rec Recording, result transcript.Result) Entry {
	return Entry{
		ID:        o.newID(),
		Timestamp: o.now().UTC(),
		FileName:  rec.FileName,
		MimeType:  rec.MimeType,
		Result:    result,
	}
}

// checkID rejects ids that were not issued by a store.
func checkID(id string) error {
	_, err := validation.ValidateUUID("id", id)
	return err
}

func sortNewestFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
}
