package sigs

import (
	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/crypto"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/orm"
)

// BucketName holds one UserData per signer address.
const BucketName = "sigs"

// maxSequence is the largest integer a javascript client can represent.
const maxSequence = 1<<53 - 1

var _ orm.CloneableData = (*UserData)(nil)

// Validate accepts a fresh account without a key, but a used sequence must
// belong to a known public key.
func (u *UserData) Validate() error {
	switch {
	case u.Sequence < 0:
		return errors.Wrap(ErrInvalidSequence, "negative")
	case u.Sequence > 0 && u.Pubkey == nil:
		return errors.Wrap(ErrInvalidSequence, "sequence without public key")
	}
	return nil
}

func (u *UserData) Copy() orm.CloneableData {
	c := *u
	return &c
}

// CheckAndIncrementSequence consumes seq. Only the current sequence is
// accepted, so every signature is valid once.
func (u *UserData) CheckAndIncrementSequence(seq int64) error {
	if seq != u.Sequence {
		return errors.Wrapf(ErrInvalidSequence, "want %d, got %d", u.Sequence, seq)
	}
	if u.Sequence >= maxSequence {
		return errors.Wrap(errors.ErrOverflow, "sequence")
	}
	u.Sequence++
	return nil
}

// SetPubkey panics when the account already has a different key.
func (u *UserData) SetPubkey(pubkey *crypto.PublicKey) {
	if u.Pubkey != nil {
		panic("cannot change the public key of an account")
	}
	u.Pubkey = pubkey
}

// AsUser returns nil for a missing object.
func AsUser(obj orm.Object) *UserData {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*UserData)
}

// NewUser keys the account by the address of pubkey. A nil key gives the
// empty prototype the bucket clones.
func NewUser(pubkey *crypto.PublicKey) orm.Object {
	var addr trinity.Address
	if pubkey != nil {
		addr = pubkey.Address()
	}
	return orm.NewSimpleObj(addr, &UserData{Pubkey: pubkey})
}

type Bucket struct {
	orm.Bucket
}

func NewBucket() Bucket {
	return Bucket{Bucket: orm.NewBucket(BucketName, NewUser(nil))}
}

// GetOrCreate returns the stored account of pubkey, or a new one at
// sequence zero. The new account is not saved.
func (b Bucket) GetOrCreate(db trinity.KVStore, pubkey *crypto.PublicKey) (orm.Object, error) {
	obj, err := b.Get(db, pubkey.Address())
	if err != nil || obj != nil {
		return obj, err
	}
	return NewUser(pubkey), nil
}

// NextNonce is the sequence the next signature of signer must carry.
// Clients call it with crypto.Signer.PublicKey().Address().
func NextNonce(db trinity.ReadOnlyKVStore, signer trinity.Address) (int64, error) {
	obj, err := NewBucket().Get(db, signer)
	if err != nil {
		return 0, errors.Wrap(err, "load account")
	}
	if u := AsUser(obj); u != nil {
		return u.Sequence, nil
	}
	return 0, nil
}
