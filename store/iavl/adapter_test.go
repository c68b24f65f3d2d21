package iavl

import (
	"testing"

	"github.com/iov-one/trinity/store"
	"github.com/iov-one/trinity/trinitytest/assert"
)

func openStore(t testing.TB, name string) CommitStore {
	commit, err := NewCommitStore(t.TempDir(), name)
	assert.Nil(t, err)
	return commit
}

func TestAdapterCache(t *testing.T) {
	store.RunCacheSuite(t, func() (store.CacheableKVStore, func()) {
		return MemCommitStore().Adapter(), func() {}
	})
}

func TestCommitVersions(t *testing.T) {
	commit := openStore(t, "state")
	open, ready, gone := []byte("chal:open"), []byte("chal:ready"), []byte("chal:gone")

	id, err := commit.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), id.Version)
	assert.Equal(t, 0, len(id.Hash))

	block := commit.CacheWrap()
	assert.Nil(t, block.Set(open, []byte("v1")))
	assert.Nil(t, block.Set(gone, []byte("v1")))
	assert.Nil(t, block.Write())
	first, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), first.Version)
	if len(first.Hash) == 0 {
		t.Fatal("empty app hash")
	}

	next := commit.CacheWrap()
	assert.Nil(t, next.Set(open, []byte("v2")))
	assert.Nil(t, next.Set(ready, []byte("v2")))
	assert.Nil(t, next.Delete(gone))

	// a parallel cache only sees the written state
	side := commit.CacheWrap()
	store.AssertGetHas(t, side, open, []byte("v1"), true)
	store.AssertGetHas(t, side, gone, []byte("v1"), true)
	store.AssertGetHas(t, side, ready, nil, false)
	store.AssertGetHas(t, next, open, []byte("v2"), true)
	store.AssertGetHas(t, next, gone, nil, false)

	assert.Nil(t, next.Write())
	got, err := commit.Get(open)
	assert.Nil(t, err)
	assert.Equal(t, []byte("v1"), got)

	second, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), second.Version)
	got, err = commit.Get(open)
	assert.Nil(t, err)
	assert.Equal(t, []byte("v2"), got)
	got, err = commit.Get(gone)
	assert.Nil(t, err)
	assert.Nil(t, got)
}

func TestLoadLatestVersion(t *testing.T) {
	dir := t.TempDir()
	commit, err := NewCommitStore(dir, "state")
	assert.Nil(t, err)
	assert.Nil(t, commit.LoadLatestVersion())
	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set([]byte("chal"), []byte("ready")))
	assert.Nil(t, cache.Write())
	saved, err := commit.Commit()
	assert.Nil(t, err)

	latest, err := commit.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, saved, latest)

	mem := MemCommitStore()
	assert.Nil(t, mem.LoadLatestVersion())
	id, err := mem.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), id.Version)
}
