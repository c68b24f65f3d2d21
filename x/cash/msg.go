package cash

import (
	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
)

// Ensure we implement the Msg interface
var _ trinity.Msg = (*SendMsg)(nil)

const (
	pathSendMsg = "cash/send"

	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	if s.Amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "non-positive SendMsg")
	}
	if err := s.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := s.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(s.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInvalidState, "memo too long")
	}
	return nil
}
