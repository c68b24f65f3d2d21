package trinitytest

import (
	"testing"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/trinitytest/assert"
)

func TestTxMock(t *testing.T) {
	msg := &Msg{RoutePath: "challenge/vote", Serialized: []byte("p1 wins")}
	tx := &Tx{Msg: msg}

	got, err := tx.GetMsg()
	assert.Nil(t, err)
	assert.Equal(t, "challenge/vote", trinity.GetPath(tx))
	raw, err := got.Marshal()
	assert.Nil(t, err)
	assert.Equal(t, []byte("p1 wins"), raw)

	assert.Nil(t, msg.Unmarshal([]byte("cancel")))
	assert.Equal(t, []byte("cancel"), msg.Serialized)

	msg.Err = errors.ErrInvalidMsg
	assert.IsErr(t, errors.ErrInvalidMsg, msg.Validate())
	_, err = (&Tx{Err: errors.ErrInvalidType}).GetMsg()
	assert.IsErr(t, errors.ErrInvalidType, err)
	assert.Panics(t, func() { tx.Marshal() })
}

func TestRandomAddr(t *testing.T) {
	a, b := RandomAddr(t), RandomAddr(t)
	assert.Nil(t, a.Validate())
	if a.Equals(b) {
		t.Fatal("two random addresses are equal")
	}
	if NewCondition().Address().Equals(NewCondition().Address()) {
		t.Fatal("two random conditions share an address")
	}
}
