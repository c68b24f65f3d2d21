package store

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/trinitytest/assert"
)

// TestStoreConstructor returns a fresh base layer and a function that
// releases it.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

// RunCacheSuite checks the cache layering and iteration contract of any
// CacheableKVStore implementation. Every subtest gets a fresh base.
func RunCacheSuite(t *testing.T, makeBase TestStoreConstructor) {
	t.Run("layers", func(t *testing.T) { testLayers(t, makeBase) })
	t.Run("iteration", func(t *testing.T) { testIteration(t, makeBase) })
}

func testLayers(t *testing.T, makeBase TestStoreConstructor) {
	base, cleanup := makeBase()
	defer cleanup()

	stake, fee, vote := []byte("stake:p1"), []byte("fee:p1"), []byte("vote:m1")
	assert.Nil(t, base.Set(stake, []byte("100")))
	AssertGetHas(t, base, stake, []byte("100"), true)

	// writes to a cache are only visible in it until written
	cache := base.CacheWrap()
	AssertGetHas(t, cache, stake, []byte("100"), true)
	assert.Nil(t, cache.Set(fee, []byte("7")))
	assert.Nil(t, cache.Set(stake, []byte("250")))
	AssertGetHas(t, cache, fee, []byte("7"), true)
	AssertGetHas(t, base, fee, nil, false)
	AssertGetHas(t, base, stake, []byte("100"), true)
	assert.Nil(t, cache.Write())
	AssertGetHas(t, base, fee, []byte("7"), true)
	AssertGetHas(t, base, stake, []byte("250"), true)

	// a discarded cache leaves no trace
	discarded := base.CacheWrap()
	assert.Nil(t, discarded.Set(vote, []byte("cancel")))
	discarded.Discard()
	AssertGetHas(t, base, vote, nil, false)

	// deletes shadow the parent value
	del := base.CacheWrap()
	assert.Nil(t, del.Delete(stake))
	AssertGetHas(t, del, stake, nil, false)
	AssertGetHas(t, base, stake, []byte("250"), true)
	assert.Nil(t, del.Write())
	AssertGetHas(t, base, stake, nil, false)
	AssertGetHas(t, base, fee, []byte("7"), true)
}

func testIteration(t *testing.T, makeBase TestStoreConstructor) {
	parent := seqModels("a", 0, 20)
	child := seqModels("a", 10, 30)
	for i := range child {
		child[i].Value = []byte("child")
	}
	removed := seqModels("a", 0, 5)
	// keys stay sorted: parent 5..9 survive, then the child range
	all := append(append([]Model{}, parent[5:10]...), child...)

	cases := map[string]struct {
		pre     []Op
		child   []Op
		start   []byte
		end     []byte
		reverse bool
		want    []Model
	}{
		"child only": {
			child: writes(child, nil),
			want:  child,
		},
		"parent only": {
			pre:  writes(parent, nil),
			want: parent,
		},
		"child shadows and deletes parent": {
			pre:   writes(parent, nil),
			child: writes(child, removed),
			want:  all,
		},
		"bounded range": {
			pre:   writes(parent, nil),
			child: writes(child, removed),
			start: all[3].Key,
			end:   all[17].Key,
			want:  all[3:17],
		},
		"reverse": {
			pre:     writes(parent, nil),
			child:   writes(child, removed),
			reverse: true,
			want:    reverse(all),
		},
		"reverse bounded range": {
			pre:     writes(parent, nil),
			child:   writes(child, removed),
			start:   all[2].Key,
			end:     all[9].Key,
			reverse: true,
			want:    reverse(all[2:9]),
		},
		"everything deleted": {
			pre:   writes(removed, nil),
			child: writes(nil, removed),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := makeBase()
			defer cleanup()
			for _, op := range tc.pre {
				assert.Nil(t, op.Apply(base))
			}
			cache := base.CacheWrap()
			for _, op := range tc.child {
				assert.Nil(t, op.Apply(cache))
			}

			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = cache.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = cache.Iterator(tc.start, tc.end)
			}
			assert.Nil(t, err)
			defer it.Release()

			for i, want := range tc.want {
				key, value, err := it.Next()
				assert.Nil(t, err)
				if !bytes.Equal(want.Key, key) {
					t.Fatalf("entry %d: want key %q, got %q", i, want.Key, key)
				}
				assert.Equal(t, want.Value, value)
			}
			if _, _, err := it.Next(); !errors.ErrIteratorDone.Is(err) {
				t.Fatalf("want ErrIteratorDone, got %+v", err)
			}
		})
	}
}

// AssertGetHas checks both Get and Has agree on the state of a key.
func AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

// seqModels returns models keyed <prefix>NNN for n in [from, to).
func seqModels(prefix string, from, to int) []Model {
	var res []Model
	for n := from; n < to; n++ {
		res = append(res, Pair([]byte(fmt.Sprintf("%s%03d", prefix, n)), []byte(fmt.Sprintf("value-%d", n))))
	}
	return res
}

func reverse(models []Model) []Model {
	res := make([]Model, 0, len(models))
	for i := len(models) - 1; i >= 0; i-- {
		res = append(res, models[i])
	}
	return res
}

// writes sets every model in set, then deletes every model in del.
func writes(set, del []Model) []Op {
	var ops []Op
	for _, m := range set {
		ops = append(ops, SetOp(m.Key, m.Value))
	}
	for _, m := range del {
		ops = append(ops, DelOp(m.Key))
	}
	return ops
}
