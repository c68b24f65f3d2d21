package orm

import (
	"testing"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/store"
	"github.com/iov-one/trinity/trinitytest/assert"
)

func stake(key string, count int64) Object {
	return NewSimpleObj([]byte(key), NewCounter(count))
}

func stakeBucket() Bucket {
	return NewBucket("stake", NewSimpleObj(nil, &Counter{})).
		WithIndex("amount", byAmount, false)
}

func byAmount(obj Object) ([]byte, error) {
	c, ok := obj.Value().(*Counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "%T", obj.Value())
	}
	return encodeSequence(c.Count), nil
}

func TestBucketName(t *testing.T) {
	assert.Panics(t, func() { NewBucket("l33t", NewSimpleObj(nil, &Counter{})) })
	assert.Panics(t, func() { NewBucket("", NewSimpleObj(nil, &Counter{})) })
	assert.Panics(t, func() { stakeBucket().WithIndex("amount", byAmount, true) })

	b := NewBucket("stake", NewSimpleObj(nil, &Counter{}))
	assert.Equal(t, "stake", b.Name())
	assert.Equal(t, []byte("stake:p1"), b.DBKey([]byte("p1")))
}

func TestBucketGetSaveDelete(t *testing.T) {
	db := store.MemStore()
	b := stakeBucket()

	if err := b.Save(db, stake("p1", -3)); !errors.ErrInvalidState.Is(err) {
		t.Fatalf("invalid object must not save: %+v", err)
	}
	if err := b.Save(db, NewSimpleObj(nil, NewCounter(3))); !errors.ErrEmpty.Is(err) {
		t.Fatalf("object without key must not save: %+v", err)
	}

	assert.Nil(t, b.Save(db, stake("p1", 848)))
	obj, err := b.Get(db, []byte("p1"))
	assert.Nil(t, err)
	c := obj.Value().(*Counter)
	assert.Equal(t, int64(848), c.Count)

	// the loaded object is a reference; saving it persists the update
	c.Count = 59
	assert.Nil(t, b.Save(db, obj))
	obj, err = b.Get(db, []byte("p1"))
	assert.Nil(t, err)
	assert.Equal(t, int64(59), obj.Value().(*Counter).Count)

	ok, err := b.Has(db, []byte("p1"))
	assert.Nil(t, err)
	assert.Equal(t, true, ok)

	assert.Nil(t, b.Delete(db, []byte("p1")))
	obj, err = b.Get(db, []byte("p1"))
	assert.Nil(t, err)
	if obj != nil {
		t.Fatalf("deleted object still present: %v", obj)
	}
	// deleting a missing object is a no-op
	assert.Nil(t, b.Delete(db, []byte("p1")))
}

func TestBucketSecondaryIndex(t *testing.T) {
	db := store.MemStore()
	b := stakeBucket()

	for _, o := range []Object{stake("p1", 100), stake("p2", 100), stake("p3", 250)} {
		assert.Nil(t, b.Save(db, o))
	}

	objs, err := b.GetIndexed(db, "amount", encodeSequence(100))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(objs))
	assert.Equal(t, []byte("p1"), objs[0].Key())
	assert.Equal(t, []byte("p2"), objs[1].Key())

	// raising a stake moves it between index values
	assert.Nil(t, b.Save(db, stake("p2", 250)))
	objs, err = b.GetIndexed(db, "amount", encodeSequence(250))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(objs))
	objs, err = b.GetIndexed(db, "amount", encodeSequence(100))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(objs))

	assert.Nil(t, b.Delete(db, []byte("p1")))
	objs, err = b.GetIndexed(db, "amount", encodeSequence(100))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(objs))

	if _, err := b.GetIndexed(db, "fee", nil); !ErrInvalidIndex.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestBucketUniqueIndex(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("stake", NewSimpleObj(nil, &Counter{})).
		WithIndex("amount", byAmount, true)

	assert.Nil(t, b.Save(db, stake("p1", 5)))
	if err := b.Save(db, stake("p2", 5)); !errors.ErrDuplicate.Is(err) {
		t.Fatalf("unique index accepted a duplicate: %+v", err)
	}
	// the failed save must not leave the object behind
	ok, err := b.Has(db, []byte("p2"))
	assert.Nil(t, err)
	assert.Equal(t, false, ok)

	// saving an unchanged object keeps its own index entry
	assert.Nil(t, b.Save(db, stake("p1", 5)))
	assert.Nil(t, b.Save(db, stake("p2", 6)))
}

func TestBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := stakeBucket()
	qr := trinity.NewQueryRouter()
	b.Register("stakes", qr)

	for _, o := range []Object{stake("p1", 100), stake("p2", 100), stake("x9", 7)} {
		assert.Nil(t, b.Save(db, o))
	}
	p1, err := stake("p1", 100).Value().Marshal()
	assert.Nil(t, err)

	cases := map[string]struct {
		path    string
		mod     string
		data    []byte
		want    []trinity.Model
		wantErr *errors.Error
	}{
		"by key": {
			path: "/stakes",
			data: []byte("p1"),
			want: []trinity.Model{trinity.Pair(b.DBKey([]byte("p1")), p1)},
		},
		"missing key": {
			path: "/stakes",
			data: []byte("p7"),
		},
		"by prefix": {
			path: "/stakes",
			mod:  trinity.PrefixQueryMod,
			data: []byte("p"),
			want: []trinity.Model{
				trinity.Pair(b.DBKey([]byte("p1")), p1),
				trinity.Pair(b.DBKey([]byte("p2")), p1),
			},
		},
		"by index": {
			path: "/stakes/amount",
			data: encodeSequence(100),
			want: []trinity.Model{
				trinity.Pair(b.DBKey([]byte("p1")), p1),
				trinity.Pair(b.DBKey([]byte("p2")), p1),
			},
		},
		"unknown mod": {
			path:    "/stakes",
			mod:     "range",
			wantErr: errors.ErrHuman,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			h := qr.Handler(tc.path)
			if h == nil {
				t.Fatalf("no handler for %q", tc.path)
			}
			got, err := h.Query(db, tc.mod, tc.data)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.Equal(t, len(tc.want), len(got))
			for i := range tc.want {
				assert.Equal(t, tc.want[i].Key, got[i].Key)
				assert.Equal(t, tc.want[i].Value, got[i].Value)
			}
		})
	}
}
