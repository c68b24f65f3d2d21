/*
Package sigs authenticates transactions with ed25519 signatures.

Every signature carries the sequence of its signer, stored per address in
the "sigs" bucket, so a signed transaction cannot be replayed. The
Decorator puts the condition of every verified signer into the context,
where Authenticate finds it for the handlers.
*/
package sigs

import (
	"context"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/x"
)

// RegisterQuery serves the accounts under "/auth".
func RegisterQuery(qr trinity.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator rejects transactions with a bad signature and, unless
// AllowMissingSigs was called, transactions without any. Transactions that
// do not implement SignedTx pass through unauthenticated.
type Decorator struct {
	allowMissingSigs bool
}

var _ trinity.Decorator = Decorator{}

func NewDecorator() Decorator {
	return Decorator{}
}

func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

func (d Decorator) Check(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx, next trinity.Checker) (*trinity.CheckResult, error) {
	ctx, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, db, tx)
}

func (d Decorator) Deliver(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx, next trinity.Deliverer) (*trinity.DeliverResult, error) {
	ctx, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d Decorator) authenticate(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (trinity.Context, error) {
	signed, ok := tx.(SignedTx)
	if !ok {
		return ctx, nil
	}
	signers, err := VerifyTxSignatures(db, signed, trinity.GetChainID(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return context.WithValue(ctx, signersKey{}, signers), nil
}

type signersKey struct{}

// Authenticate reports the signers the Decorator verified.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx trinity.Context) []trinity.Condition {
	signers, _ := ctx.Value(signersKey{}).([]trinity.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx trinity.Context, addr trinity.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
