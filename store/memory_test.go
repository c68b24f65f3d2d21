package store

import (
	"testing"

	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/trinitytest/assert"
)

func TestSliceIterator(t *testing.T) {
	// order is kept even when the slice is not sorted
	models := reverse(seqModels("chal", 0, 5))

	got, err := ReadAll(NewSliceIterator(models))
	assert.Nil(t, err)
	assert.Equal(t, models, got)

	it := NewSliceIterator(models)
	it.Release()
	_, _, err = it.Next()
	assert.IsErr(t, errors.ErrIteratorDone, err)
}

func TestReadAllRange(t *testing.T) {
	db := MemStore()
	for _, m := range seqModels("stake:", 0, 4) {
		assert.Nil(t, db.Set(m.Key, m.Value))
	}

	it, err := db.Iterator([]byte("stake:001"), []byte("stake:003"))
	assert.Nil(t, err)
	got, err := ReadAll(it)
	assert.Nil(t, err)
	assert.Equal(t, seqModels("stake:", 1, 3), got)
}

func TestOpBatch(t *testing.T) {
	db := MemStore()
	assert.Nil(t, db.Set([]byte("fee:p2"), []byte("5")))

	b := NewOpBatch(db)
	assert.Nil(t, b.Set([]byte("fee:p1"), []byte("5")))
	assert.Nil(t, b.Delete([]byte("fee:p2")))
	// nothing is applied before Write
	AssertGetHas(t, db, []byte("fee:p1"), nil, false)

	assert.Nil(t, b.Write())
	AssertGetHas(t, db, []byte("fee:p1"), []byte("5"), true)
	AssertGetHas(t, db, []byte("fee:p2"), nil, false)

	// a written batch is empty
	assert.Nil(t, db.Set([]byte("fee:p1"), []byte("9")))
	assert.Nil(t, b.Write())
	AssertGetHas(t, db, []byte("fee:p1"), []byte("9"), true)
}

func TestRecordingStore(t *testing.T) {
	db := NewRecordingStore(MemStore())
	rec := db.(Recorder)

	assert.Nil(t, db.Set([]byte("chal"), []byte("x")))

	kept := db.CacheWrap()
	assert.Nil(t, kept.Set([]byte("custody"), []byte("y")))
	assert.Nil(t, kept.Delete([]byte("gone")))
	assert.Nil(t, kept.Write())

	dropped := db.CacheWrap()
	assert.Nil(t, dropped.Set([]byte("never"), []byte("z")))
	dropped.Discard()

	want := map[string][]byte{
		"chal":    []byte("x"),
		"custody": []byte("y"),
		"gone":    nil,
	}
	assert.Equal(t, want, rec.Changes())
}
