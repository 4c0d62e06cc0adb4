// Package history keeps past transcriptions together with their source audio.
//
// Two backends implement Store: StorageStore writes each entry as a pair of
// objects (`<id>/audio` and `<id>/entry.json`) to a storage.Storage, and
// RedisStore keeps entries as JSON values indexed by a sorted set. Both return
// entries newest first.
package history
