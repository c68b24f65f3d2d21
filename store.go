package trinity

// ReadOnlyKVStore is the read side of the ledger state. A missing key reads
// as a nil value, never as an error.
type ReadOnlyKVStore interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator walks [start, end) in ascending key order. A nil bound is
	// open. The range must not be written to while the iterator is in use.
	Iterator(start, end []byte) (Iterator, error)
	// ReverseIterator walks [start, end) in descending key order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write side shared by stores and batches.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the store handed to every handler.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch groups writes that are applied together on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator yields entries until Next returns ErrIteratorDone. Always call
// Release once done.
//
//	it, err := db.Iterator(prefix, end)
//	...
//	defer it.Release()
//	for {
//		key, value, err := it.Next()
//		if errors.ErrIteratorDone.Is(err) {
//			break
//		}
//		...
//	}
type Iterator interface {
	Next() (key, value []byte, err error)
	Release()
}

// CacheableKVStore can open a scratch layer over itself. A transaction runs
// inside such a layer, so a failed challenge operation leaves no partial
// writes behind.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a scratch layer. Write applies it to the store below,
// Discard drops it.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the persistent root of the ledger state.
type CommitKVStore interface {
	// Get reads the last committed state.
	Get(key []byte) ([]byte, error)
	// CacheWrap opens a layer whose writes go into the next commit.
	CacheWrap() KVCacheWrap
	Commit() (CommitID, error)
	// LoadLatestVersion loads the newest complete version from disk.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by height and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
