package history

import (
	"context"

	"github.com/kbukum/linguist/errors"
	"github.com/kbukum/linguist/logger"
	"github.com/kbukum/linguist/redis"
	"github.com/kbukum/linguist/transcript"
)

// RedisStore keeps history in Redis. Entries are JSON values, recordings are
// raw values under a parallel key, and a sorted set scored by timestamp
// orders them.
type RedisStore struct {
	client  *redis.Client
	entries *redis.TypedStore[Entry]
	prefix  string
	opts    options
	log     *logger.Logger
}

// NewRedisStore creates a Store on client with every key under prefix.
func NewRedisStore(client *redis.Client, prefix string, opts ...Option) *RedisStore {
	prefix += ":history"
	return &RedisStore{
		client:  client,
		entries: redis.NewTypedStore[Entry](client, prefix+":entry"),
		prefix:  prefix,
		opts:    buildOptions(opts),
		log:     logger.WithComponent("history"),
	}
}

func (s *RedisStore) indexKey() string         { return s.prefix + ":index" }
func (s *RedisStore) audioKey(id string) string { return s.prefix + ":audio:" + id }

// Save stores rec and result as a new entry. Keys written before a failing
// step are removed again.
func (s *RedisStore) Save(ctx context.Context, rec Recording, result transcript.Result) (Entry, error) {
	entry := s.opts.newEntry(rec, result)
	audioKey, entryKey := s.audioKey(entry.ID), s.entries.Key(entry.ID)

	if err := s.client.Set(ctx, audioKey, rec.Data, 0); err != nil {
		s.discard(ctx, audioKey)
		return Entry{}, errors.StorageError(err)
	}
	if err := s.entries.Save(ctx, entry.ID, &entry, 0); err != nil {
		s.discard(ctx, audioKey, entryKey)
		return Entry{}, errors.StorageError(err)
	}
	score := float64(entry.Timestamp.UnixNano())
	if err := s.client.ZAdd(ctx, s.indexKey(), score, entry.ID); err != nil {
		s.discard(ctx, audioKey, entryKey)
		return Entry{}, errors.StorageError(err)
	}
	return entry, nil
}

// discard removes the keys of a failed save, even after ctx is cancelled.
func (s *RedisStore) discard(ctx context.Context, keys ...string) {
	if err := s.client.Del(context.WithoutCancel(ctx), keys...); err != nil {
		s.log.WithContext(ctx).Warn("failed to remove partial history entry", logger.Fields(
			"keys", keys,
			logger.FieldError, err.Error(),
		))
	}
}

// GetAll returns every indexed entry newest first. Index members whose entry
// has vanished are pruned.
func (s *RedisStore) GetAll(ctx context.Context) ([]Entry, error) {
	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, -1)
	if err != nil {
		return nil, errors.StorageError(err)
	}

	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		entry, err := s.entries.Load(ctx, id)
		if err != nil {
			s.log.WithContext(ctx).Warn("skipping unreadable history entry", logger.Fields(
				"id", id,
				logger.FieldError, err.Error(),
			))
			continue
		}
		if entry == nil {
			_, _ = s.client.ZRem(ctx, s.indexKey(), id)
			continue
		}
		entries = append(entries, *entry)
	}
	sortNewestFirst(entries)
	return entries, nil
}

// Audio returns the recording saved with entry id.
func (s *RedisStore) Audio(ctx context.Context, id string) (Recording, error) {
	if err := checkID(id); err != nil {
		return Recording{}, err
	}
	entry, err := s.entries.Load(ctx, id)
	if err != nil {
		return Recording{}, errors.StorageError(err)
	}
	if entry == nil {
		return Recording{}, errors.NotFound("history entry", id)
	}
	data, err := s.client.GetBytes(ctx, s.audioKey(id))
	if err != nil {
		if redis.IsNil(err) {
			return Recording{}, errors.NotFound("history entry", id)
		}
		return Recording{}, errors.StorageError(err)
	}
	return Recording{Data: data, FileName: entry.FileName, MimeType: entry.MimeType}, nil
}

// Delete removes entry id and its recording.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	entry, err := s.entries.Load(ctx, id)
	if err != nil {
		return errors.StorageError(err)
	}
	if entry == nil {
		return errors.NotFound("history entry", id)
	}
	if _, err := s.client.ZRem(ctx, s.indexKey(), id); err != nil {
		return errors.StorageError(err)
	}
	if err := s.client.Del(ctx, s.entries.Key(id), s.audioKey(id)); err != nil {
		return errors.StorageError(err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
