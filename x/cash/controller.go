package cash

import (
	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
)

// Controller moves coins on behalf of other extensions, like the stakes
// and fees of a challenge.
type Controller interface {
	Balance(trinity.ReadOnlyKVStore, trinity.Address) (uint64, error)
	MoveCoins(db trinity.KVStore, src, dest trinity.Address, amount uint64) error
}

// BaseController also mints coins for genesis accounts.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance fails with ErrNotFound for an address without a wallet.
func (c BaseController) Balance(db trinity.ReadOnlyKVStore, addr trinity.Address) (uint64, error) {
	w, ok, err := c.bucket.load(db, addr)
	switch {
	case err != nil:
		return 0, err
	case !ok:
		return 0, errors.Wrapf(errors.ErrNotFound, "wallet %s", addr)
	}
	return w.Balance, nil
}

// MoveCoins fails with ErrEmpty when src has no wallet and with
// ErrInsufficientAmount when it holds less than amount. Moving to src
// itself only checks the funds.
func (c BaseController) MoveCoins(db trinity.KVStore, src, dest trinity.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "non-positive amount")
	}
	from, ok, err := c.bucket.load(db, src)
	switch {
	case err != nil:
		return err
	case !ok:
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
	}
	if err := from.Subtract(amount); err != nil || src.Equals(dest) {
		return err
	}

	to, _, err := c.bucket.load(db, dest)
	if err != nil {
		return err
	}
	if err := to.Add(amount); err != nil {
		return err
	}
	if err := c.bucket.Put(db, src, from); err != nil {
		return err
	}
	return c.bucket.Put(db, dest, to)
}

// CoinMint creates amount coins in the wallet of dest.
func (c BaseController) CoinMint(db trinity.KVStore, dest trinity.Address, amount uint64) error {
	w, _, err := c.bucket.load(db, dest)
	if err != nil {
		return err
	}
	if err := w.Add(amount); err != nil {
		return err
	}
	return c.bucket.Put(db, dest, w)
}
