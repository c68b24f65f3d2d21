package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/crypto"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/store"
	"github.com/iov-one/trinity/trinitytest"
	"github.com/iov-one/trinity/trinitytest/assert"
)

// signerSpy remembers the signers the decorator passed down.
type signerSpy struct {
	seen []trinity.Condition
}

func (s *signerSpy) Check(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.CheckResult, error) {
	s.seen = Authenticate{}.GetConditions(ctx)
	return &trinity.CheckResult{}, nil
}

func (s *signerSpy) Deliver(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.DeliverResult, error) {
	s.seen = Authenticate{}.GetConditions(ctx)
	return &trinity.DeliverResult{}, nil
}

func TestDecorator(t *testing.T) {
	const chainID = "trinity-decorator"
	ctx := trinity.WithChainID(context.Background(), chainID)
	moderator := crypto.GenPrivKeyEd25519()
	signer := []trinity.Condition{moderator.PublicKey().Condition()}

	tx := NewStdTx([]byte("challenge/vote"))
	sign := func(seq int64) []*StdSignature {
		sig, err := SignTx(moderator, tx, chainID, seq)
		assert.Nil(t, err)
		return []*StdSignature{sig}
	}
	first, second := sign(0), sign(1)

	run := map[string]func(trinity.Decorator, trinity.KVStore, trinity.Handler) error{
		"check": func(d trinity.Decorator, db trinity.KVStore, h trinity.Handler) error {
			_, err := d.Check(ctx, db, tx, h)
			return err
		},
		"deliver": func(d trinity.Decorator, db trinity.KVStore, h trinity.Handler) error {
			_, err := d.Deliver(ctx, db, tx, h)
			return err
		},
	}

	for name, call := range run {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			spy := &signerSpy{}
			strict := NewDecorator()
			lenient := strict.AllowMissingSigs()

			tx.Signatures = nil
			assert.IsErr(t, errors.ErrUnauthorized, call(strict, db, spy))

			tx.Signatures = first
			assert.Nil(t, call(strict, db, spy))
			assert.Equal(t, signer, spy.seen)

			// the sequence was consumed
			assert.IsErr(t, ErrInvalidSequence, call(strict, db, spy))

			tx.Signatures = nil
			assert.Nil(t, call(lenient, db, spy))
			assert.Equal(t, []trinity.Condition{}, spy.seen)

			tx.Signatures = second
			assert.Nil(t, call(lenient, db, spy))
			assert.Equal(t, signer, spy.seen)
		})
	}
}

func TestDecoratorPassesUnsignedTx(t *testing.T) {
	ctx := trinity.WithChainID(context.Background(), "trinity-decorator")
	h := &trinitytest.Handler{}
	tx := &trinitytest.Tx{Msg: &trinitytest.Msg{RoutePath: "challenge/vote"}}

	_, err := NewDecorator().Deliver(ctx, store.MemStore(), tx, h)
	assert.Nil(t, err)
	assert.Equal(t, 1, h.DeliverCallCount())
}

func TestAuthenticateHasAddress(t *testing.T) {
	p1 := crypto.GenPrivKeyEd25519().PublicKey()
	p2 := crypto.GenPrivKeyEd25519().PublicKey()
	ctx := context.WithValue(context.Background(), signersKey{}, []trinity.Condition{p1.Condition()})

	auth := Authenticate{}
	assert.Equal(t, true, auth.HasAddress(ctx, p1.Address()))
	assert.Equal(t, false, auth.HasAddress(ctx, p2.Address()))
	assert.Equal(t, false, auth.HasAddress(context.Background(), p1.Address()))
}
