package sigs

import (
	"testing"

	"github.com/iov-one/trinity/crypto"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/store"
	"github.com/iov-one/trinity/trinitytest/assert"
)

func TestAccountLifecycle(t *testing.T) {
	db := store.MemStore()
	accounts := NewBucket()
	pub := crypto.GenPrivKeyEd25519().PublicKey()

	obj, err := accounts.Get(db, pub.Address())
	assert.Nil(t, err)
	assert.Nil(t, obj)

	obj, err = accounts.GetOrCreate(db, pub)
	assert.Nil(t, err)
	assert.Nil(t, obj.Validate())
	user := AsUser(obj)
	assert.Equal(t, int64(0), user.Sequence)

	assert.IsErr(t, ErrInvalidSequence, user.CheckAndIncrementSequence(5))
	assert.Nil(t, user.CheckAndIncrementSequence(0))
	assert.IsErr(t, ErrInvalidSequence, user.CheckAndIncrementSequence(0))
	assert.Nil(t, user.CheckAndIncrementSequence(1))
	assert.Nil(t, accounts.Save(db, obj))

	// GetOrCreate finds the saved account
	obj, err = accounts.GetOrCreate(db, pub)
	assert.Nil(t, err)
	assert.Equal(t, &UserData{Pubkey: pub, Sequence: 2}, AsUser(obj))

	next, err := NextNonce(db, pub.Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(2), next)
}

func TestUserDataValidate(t *testing.T) {
	pub := crypto.GenPrivKeyEd25519().PublicKey()

	cases := map[string]struct {
		user    UserData
		wantErr *errors.Error
	}{
		"fresh account":            {user: UserData{}},
		"used account":             {user: UserData{Pubkey: pub, Sequence: 17}},
		"negative sequence":        {user: UserData{Pubkey: pub, Sequence: -30}, wantErr: ErrInvalidSequence},
		"sequence without any key": {user: UserData{Sequence: 1}, wantErr: ErrInvalidSequence},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, tc.user.Validate())
		})
	}
}

func TestSetPubkeyOnce(t *testing.T) {
	obj := NewUser(nil)
	pub := crypto.GenPrivKeyEd25519().PublicKey()
	AsUser(obj).SetPubkey(pub)
	// the prototype has no key yet
	assert.IsErr(t, errors.ErrEmpty, obj.Validate())
	obj.SetKey(pub.Address())
	assert.Nil(t, obj.Validate())
	assert.Panics(t, func() { AsUser(obj).SetPubkey(pub) })
}

func TestSequenceOverflow(t *testing.T) {
	u := &UserData{Sequence: maxSequence}
	assert.IsErr(t, errors.ErrOverflow, u.CheckAndIncrementSequence(maxSequence))
	assert.Equal(t, int64(maxSequence), u.Sequence)
}
