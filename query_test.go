package trinity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type queryMock struct{ name string }

func (q queryMock) Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error) {
	return []Model{Pair([]byte(q.name), data)}, nil
}

func TestQueryRouter(t *testing.T) {
	r := NewQueryRouter()
	r.RegisterAll(
		func(qr QueryRouter) { qr.Register("/challenges", queryMock{"c"}) },
		func(qr QueryRouter) { qr.Register("/custody", queryMock{"cu"}) },
	)

	assert.Nil(t, r.Handler("/missing"))
	h := r.Handler("/challenges")
	if assert.NotNil(t, h) {
		res, err := h.Query(nil, KeyQueryMod, []byte("k"))
		assert.NoError(t, err)
		assert.Equal(t, []Model{{Key: []byte("c"), Value: []byte("k")}}, res)
	}
	assert.Equal(t, []string{"/challenges", "/custody"}, r.Paths())

	assert.Panics(t, func() { r.Register("/custody", queryMock{}) })
}
