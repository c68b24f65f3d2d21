package cash

import (
	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/orm"
)

// BucketName prefixes every wallet in the store.
const BucketName = "cash"

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) Validate() error         { return nil }
func (w *Wallet) Copy() orm.CloneableData { return &Wallet{Balance: w.Balance} }

// Add fails with ErrOverflow instead of wrapping around.
func (w *Wallet) Add(amount uint64) error {
	if w.Balance+amount < w.Balance {
		return errors.Wrapf(errors.ErrOverflow, "%d + %d", w.Balance, amount)
	}
	w.Balance += amount
	return nil
}

func (w *Wallet) Subtract(amount uint64) error {
	if w.Balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, need %d", w.Balance, amount)
	}
	w.Balance -= amount
	return nil
}

// Bucket keeps one wallet per address.
type Bucket struct {
	orm.ModelBucket
}

func NewBucket() Bucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Wallet{}))
	return Bucket{ModelBucket: orm.NewModelBucket(b)}
}

// load returns an empty wallet for an address that never held coins.
func (b Bucket) load(db trinity.ReadOnlyKVStore, addr trinity.Address) (*Wallet, bool, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case errors.ErrNotFound.Is(err):
		return &w, false, nil
	case err != nil:
		return nil, false, err
	}
	return &w, true, nil
}
