package asset

import (
	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/orm"
)

// BucketName is where holdings are stored.
const BucketName = "asset"

var _ orm.Model = (*Holding)(nil)

// Validate requires both the owner and the mint.
func (h *Holding) Validate() error {
	if err := h.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := h.Mint.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	return nil
}

// Copy returns a deep copy of the holding.
func (h *Holding) Copy() orm.CloneableData {
	return &Holding{
		Owner:  append(trinity.Address(nil), h.Owner...),
		Mint:   append(trinity.Address(nil), h.Mint...),
		Amount: h.Amount,
	}
}

// HoldingKey returns the primary key of the holding of mint by owner.
// Addresses are of fixed length, so the key is unambiguous.
func HoldingKey(owner, mint trinity.Address) []byte {
	key := make([]byte, 0, len(owner)+len(mint))
	key = append(key, owner...)
	return append(key, mint...)
}

func ownerIndexer(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot index nil")
	}
	h, ok := obj.Value().(*Holding)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj.Value())
	}
	return h.Owner, nil
}

// NewBucket returns a bucket for holdings, indexed by owner.
func NewBucket() orm.ModelBucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Holding{})).
		WithIndex("owner", ownerIndexer, false)
	return orm.NewModelBucket(b)
}
