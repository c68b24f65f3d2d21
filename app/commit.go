package app

import (
	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
)

// CommitStore keeps one cache for DeliverTx and one for CheckTx on top of
// the committed state. Commit flushes the first and drops the second.
type CommitStore struct {
	committed trinity.CommitKVStore
	deliver   trinity.KVCacheWrap
	check     trinity.KVCacheWrap
}

// NewCommitStore panics when the latest version cannot be loaded.
func NewCommitStore(store trinity.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(err)
	}
	cs := &CommitStore{committed: store}
	cs.reset()
	return cs
}

func (cs *CommitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

func (cs *CommitStore) CommitInfo() (trinity.CommitID, error) {
	return cs.committed.LatestVersion()
}

func (cs *CommitStore) Commit() (trinity.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return trinity.CommitID{}, errors.Wrap(err, "flush block")
	}
	cs.check.Discard()
	id, err := cs.committed.Commit()
	if err != nil {
		return id, err
	}
	cs.reset()
	return id, nil
}

func (cs *CommitStore) CheckStore() trinity.CacheableKVStore   { return cs.check }
func (cs *CommitStore) DeliverStore() trinity.CacheableKVStore { return cs.deliver }

// chainIDKey lives outside of every bucket prefix.
const chainIDKey = "_tr:chainID"

func mustLoadChainID(db trinity.ReadOnlyKVStore) string {
	raw, err := db.Get([]byte(chainIDKey))
	if err != nil {
		panic(err)
	}
	return string(raw)
}

// saveChainID refuses to overwrite a chain id that is already stored.
func saveChainID(db trinity.KVStore, chainID string) error {
	if !trinity.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInvalidInput, "chain id %q", chainID)
	}
	switch taken, err := db.Has([]byte(chainIDKey)); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case taken:
		return errors.Wrap(errors.ErrUnauthorized, "chain id is set at genesis only")
	}
	return errors.Wrap(db.Set([]byte(chainIDKey), []byte(chainID)), "save chain id")
}
