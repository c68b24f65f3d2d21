package orm

import (
	"testing"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/store"
	"github.com/iov-one/trinity/trinitytest/assert"
)

func TestPrefixRange(t *testing.T) {
	cases := map[string]struct {
		prefix []byte
		end    []byte
	}{
		"last byte":      {[]byte{1, 3, 4}, []byte{1, 3, 5}},
		"single byte":    {[]byte{79}, []byte{80}},
		"whole range":    {nil, nil},
		"carry once":     {[]byte{17, 28, 255}, []byte{17, 29, 0}},
		"carry twice":    {[]byte{15, 42, 255, 255}, []byte{15, 43, 0, 0}},
		"no upper bound": {[]byte{255, 255}, nil},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			start, end := prefixRange(tc.prefix)
			assert.Equal(t, tc.prefix, start)
			assert.Equal(t, tc.end, end)
		})
	}
}

func TestQueryPrefix(t *testing.T) {
	db := store.MemStore()
	keys := []string{"chal:b", "chal:a", "chal", "cash:a", "chan:a"}
	for i, k := range keys {
		assert.Nil(t, db.Set([]byte(k), []byte{byte(i)}))
	}

	res, err := queryPrefix(db, []byte("chal:"))
	assert.Nil(t, err)
	assert.Equal(t, []trinity.Model{
		trinity.Pair([]byte("chal:a"), []byte{1}),
		trinity.Pair([]byte("chal:b"), []byte{0}),
	}, res)

	res, err = queryPrefix(db, []byte("cha"))
	assert.Nil(t, err)
	assert.Equal(t, 4, len(res))

	res, err = queryPrefix(db, []byte("nft:"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))
}

func TestRawQuery(t *testing.T) {
	db := store.MemStore()
	assert.Nil(t, db.Set([]byte("chal:1"), []byte("one")))
	assert.Nil(t, db.Set([]byte("chal:2"), []byte("two")))
	assert.Nil(t, db.Set([]byte("cash:1"), []byte("coins")))

	qr := trinity.NewQueryRouter()
	RegisterQuery(qr)
	h := qr.Handler("/")
	if h == nil {
		t.Fatal("raw query handler not registered")
	}

	res, err := h.Query(db, trinity.KeyQueryMod, []byte("cash:1"))
	assert.Nil(t, err)
	assert.Equal(t, []trinity.Model{trinity.Pair([]byte("cash:1"), []byte("coins"))}, res)

	res, err = h.Query(db, trinity.KeyQueryMod, []byte("missing"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))

	res, err = h.Query(db, trinity.PrefixQueryMod, []byte("chal:"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))

	if _, err := h.Query(db, "range", nil); err == nil {
		t.Fatal("unknown mod must fail")
	}
}
