package asset

import (
	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
)

const optKey = "assets"

// GenesisHolding is a single genesis entry.
type GenesisHolding struct {
	Owner  trinity.Address `json:"owner"`
	Mint   trinity.Address `json:"mint"`
	Amount uint64          `json:"amount"`
}

// Initializer creates the genesis holdings.
type Initializer struct{}

var _ trinity.Initializer = Initializer{}

// FromGenesis reads the "assets" section.
func (Initializer) FromGenesis(opts trinity.Options, db trinity.KVStore) error {
	var holdings []GenesisHolding
	if err := opts.ReadOptions(optKey, &holdings); err != nil {
		return err
	}
	control := NewController(NewBucket())
	for i, h := range holdings {
		if err := h.Owner.Validate(); err != nil {
			return errors.Wrapf(err, "holding %d owner", i)
		}
		if err := h.Mint.Validate(); err != nil {
			return errors.Wrapf(err, "holding %d mint", i)
		}
		if h.Amount == 0 {
			return errors.Wrapf(errors.ErrInvalidAmount, "holding %d", i)
		}
		if err := control.Mint(db, h.Owner, h.Mint, h.Amount); err != nil {
			return errors.Wrapf(err, "holding %d", i)
		}
	}
	return nil
}
