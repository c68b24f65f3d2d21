package store

// Recorder reports the keys written through a recording store. Deleted keys
// map to nil.
type Recorder interface {
	Changes() map[string][]byte
}

// NewRecordingStore wraps db and records every write that reaches it,
// including those flushed from its cache wraps. Writes of a discarded cache
// are not recorded.
func NewRecordingStore(db KVStore) CacheableKVStore {
	return &recording{KVStore: db, changes: make(map[string][]byte)}
}

type recording struct {
	KVStore
	changes map[string][]byte
}

var _ Recorder = (*recording)(nil)

func (r *recording) Changes() map[string][]byte { return r.changes }

func (r *recording) Set(key, value []byte) error {
	r.changes[string(key)] = value
	return r.KVStore.Set(key, value)
}

func (r *recording) Delete(key []byte) error {
	r.changes[string(key)] = nil
	return r.KVStore.Delete(key)
}

func (r *recording) NewBatch() Batch {
	return NewOpBatch(r)
}

func (r *recording) CacheWrap() KVCacheWrap {
	return NewCache(r, r.NewBatch())
}
