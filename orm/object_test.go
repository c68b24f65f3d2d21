package orm

import (
	"testing"

	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/trinitytest/assert"
)

func TestSimpleObjClone(t *testing.T) {
	obj := NewSimpleObj([]byte("chal"), NewCounter(4))
	assert.Nil(t, obj.Validate())

	clone := obj.Clone()
	assert.Equal(t, []byte("chal"), clone.Key())
	assert.Equal(t, NewCounter(4), clone.Value())

	// the clone owns its key and value
	obj.Key()[0] = 'x'
	obj.Value().(*Counter).Count = -1
	assert.IsErr(t, errors.ErrInvalidState, obj.Validate())
	assert.Equal(t, []byte("chal"), clone.Key())
	assert.Nil(t, clone.Validate())
}

func TestSimpleObjPrototype(t *testing.T) {
	proto := NewSimpleObj(nil, (*Counter)(nil))
	fresh := proto.Clone()
	assert.Nil(t, fresh.Key())
	assert.Equal(t, &Counter{}, fresh.Value())

	assert.IsErr(t, errors.ErrEmpty, fresh.Validate())
	fresh.SetKey([]byte{1, 3})
	assert.Nil(t, fresh.Validate())

	assert.IsErr(t, errors.ErrEmpty, NewSimpleObj([]byte("k"), nil).Validate())
}
