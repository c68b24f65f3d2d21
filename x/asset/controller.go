package asset

import (
	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/orm"
)

// Controller is the asset functionality used by other extensions.
type Controller interface {
	// Balance returns the number of units of mint held by owner.
	Balance(db trinity.ReadOnlyKVStore, owner, mint trinity.Address) (uint64, error)
	// MoveAsset moves n units of mint from src to dest.
	MoveAsset(db trinity.KVStore, mint, src, dest trinity.Address, n uint64) error
}

// BaseController stores holdings in a single bucket.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on given bucket.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

func (c BaseController) Balance(db trinity.ReadOnlyKVStore, owner, mint trinity.Address) (uint64, error) {
	h, err := c.load(db, owner, mint)
	if err != nil {
		return 0, err
	}
	return h.Amount, nil
}

// MoveAsset moves n units of mint from src to dest. The source holding is
// removed once it is empty.
func (c BaseController) MoveAsset(db trinity.KVStore, mint, src, dest trinity.Address, n uint64) error {
	if n == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "non-positive amount")
	}
	from, err := c.load(db, src, mint)
	if err != nil {
		return err
	}
	if from.Amount < n {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s holds %d of %s, need %d", src, from.Amount, mint, n)
	}
	if src.Equals(dest) {
		return nil
	}
	to, err := c.load(db, dest, mint)
	if err != nil {
		return err
	}
	if to.Amount+n < to.Amount {
		return errors.Wrap(errors.ErrOverflow, "destination holding")
	}

	from.Amount -= n
	to.Amount += n
	if err := c.save(db, from); err != nil {
		return err
	}
	return c.save(db, to)
}

// Mint creates n new units of mint owned by owner.
func (c BaseController) Mint(db trinity.KVStore, owner, mint trinity.Address, n uint64) error {
	h, err := c.load(db, owner, mint)
	if err != nil {
		return err
	}
	if h.Amount+n < h.Amount {
		return errors.Wrap(errors.ErrOverflow, "holding")
	}
	h.Amount += n
	return c.save(db, h)
}

// Holdings returns all holdings of given owner.
func (c BaseController) Holdings(db trinity.ReadOnlyKVStore, owner trinity.Address) ([]*Holding, error) {
	keys, err := c.bucket.ByIndex(db, "owner", owner)
	if err != nil {
		return nil, err
	}
	res := make([]*Holding, 0, len(keys))
	for _, key := range keys {
		var h Holding
		if err := c.bucket.One(db, key, &h); err != nil {
			return nil, errors.Wrapf(err, "holding %X", key)
		}
		res = append(res, &h)
	}
	return res, nil
}

// load returns the stored holding or an empty one.
func (c BaseController) load(db trinity.ReadOnlyKVStore, owner, mint trinity.Address) (*Holding, error) {
	var h Holding
	switch err := c.bucket.One(db, HoldingKey(owner, mint), &h); {
	case err == nil:
		return &h, nil
	case errors.ErrNotFound.Is(err):
		return &Holding{Owner: owner, Mint: mint}, nil
	default:
		return nil, err
	}
}

func (c BaseController) save(db trinity.KVStore, h *Holding) error {
	key := HoldingKey(h.Owner, h.Mint)
	if h.Amount == 0 {
		if err := c.bucket.Has(db, key); err != nil {
			if errors.ErrNotFound.Is(err) {
				return nil
			}
			return err
		}
		return c.bucket.Delete(db, key)
	}
	return c.bucket.Put(db, key, h)
}
