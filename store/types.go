package store

import "github.com/iov-one/trinity"

// Aliases of the root storage interfaces, so store backends and tests only
// need this package.
type (
	ReadOnlyKVStore  = trinity.ReadOnlyKVStore
	SetDeleter       = trinity.SetDeleter
	KVStore          = trinity.KVStore
	Batch            = trinity.Batch
	Iterator         = trinity.Iterator
	CacheableKVStore = trinity.CacheableKVStore
	KVCacheWrap      = trinity.KVCacheWrap
	CommitKVStore    = trinity.CommitKVStore
	CommitID         = trinity.CommitID
	Model            = trinity.Model
)

// Pair builds a Model.
var Pair = trinity.Pair
