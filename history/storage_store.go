package history

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"path"
	"strings"

	"github.com/kbukum/linguist/errors"
	"github.com/kbukum/linguist/logger"
	"github.com/kbukum/linguist/storage"
	"github.com/kbukum/linguist/transcript"
)

const (
	audioObject = "audio"
	entryObject = "entry.json"
)

// StorageStore keeps history in object storage.
type StorageStore struct {
	objects storage.ByteClient
	opts    options
	log     *logger.Logger
}

// NewStorageStore creates a Store backed by s.
func NewStorageStore(s storage.Storage, opts ...Option) *StorageStore {
	return &StorageStore{
		objects: storage.NewByteClient(s),
		opts:    buildOptions(opts),
		log:     logger.WithComponent("history"),
	}
}

// Save writes the audio first so an entry never points at missing audio.
func (s *StorageStore) Save(ctx context.Context, rec Recording, result transcript.Result) (Entry, error) {
	entry := s.opts.newEntry(rec, result)

	if err := s.objects.Upload(ctx, path.Join(entry.ID, audioObject), rec.Data); err != nil {
		return Entry{}, errors.StorageError(err)
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return Entry{}, errors.Internal(err)
	}
	if err := s.objects.Upload(ctx, path.Join(entry.ID, entryObject), data); err != nil {
		_ = s.objects.Delete(ctx, path.Join(entry.ID, audioObject))
		return Entry{}, errors.StorageError(err)
	}
	return entry, nil
}

// GetAll skips entries that cannot be read and logs them.
func (s *StorageStore) GetAll(ctx context.Context) ([]Entry, error) {
	files, err := s.objects.List(ctx, "")
	if err != nil {
		return nil, errors.StorageError(err)
	}

	entries := make([]Entry, 0, len(files)/2)
	for _, f := range files {
		if path.Base(f.Path) != entryObject {
			continue
		}
		entry, err := s.load(ctx, f.Path)
		if err != nil {
			s.log.WithContext(ctx).Warn("skipping unreadable history entry", logger.Fields(
				"path", f.Path,
				logger.FieldError, err.Error(),
			))
			continue
		}
		entries = append(entries, entry)
	}
	sortNewestFirst(entries)
	return entries, nil
}

// Audio returns the recording saved with entry id.
func (s *StorageStore) Audio(ctx context.Context, id string) (Recording, error) {
	if err := checkID(id); err != nil {
		return Recording{}, err
	}
	entry, err := s.load(ctx, path.Join(id, entryObject))
	if err != nil {
		return Recording{}, s.mapErr(err, id)
	}
	data, err := s.objects.Download(ctx, path.Join(id, audioObject))
	if err != nil {
		return Recording{}, s.mapErr(err, id)
	}
	return Recording{Data: data, FileName: entry.FileName, MimeType: entry.MimeType}, nil
}

// Delete removes entry id and its recording.
func (s *StorageStore) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	ok, err := s.objects.Exists(ctx, path.Join(id, entryObject))
	if err != nil {
		return errors.StorageError(err)
	}
	if !ok {
		return errors.NotFound("history entry", id)
	}
	// Entry first: a leftover audio object is invisible to GetAll.
	for _, name := range []string{entryObject, audioObject} {
		if err := s.objects.Delete(ctx, path.Join(id, name)); err != nil {
			return errors.StorageError(err)
		}
	}
	return nil
}

func (s *StorageStore) load(ctx context.Context, p string) (Entry, error) {
	data, err := s.objects.Download(ctx, p)
	if err != nil {
		return Entry{}, err
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, err
	}
	if entry.ID == "" {
		entry.ID = strings.TrimSuffix(p, "/"+entryObject)
	}
	return entry, nil
}

func (s *StorageStore) mapErr(err error, id string) error {
	if stderrors.Is(err, storage.ErrNotFound) {
		return errors.NotFound("history entry", id)
	}
	return errors.StorageError(err)
}

var _ Store = (*StorageStore)(nil)
