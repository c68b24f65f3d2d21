package asset

import (
	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
)

const (
	pathTransferMsg = "asset/transfer"

	transferTxCost int64 = 100
)

var _ trinity.Msg = (*TransferMsg)(nil)

// Path returns the routing path for this message
func (TransferMsg) Path() string {
	return pathTransferMsg
}

// Validate makes sure that this is sensible
func (m *TransferMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "non-positive amount")
	}
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if err := m.Mint.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	return nil
}
