package app

import (
	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/x/asset"
	"github.com/iov-one/trinity/x/cash"
	"github.com/iov-one/trinity/x/challenge"
	"github.com/iov-one/trinity/x/sigs"
)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (trinity.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return tx, nil
}

// make sure tx fulfills all interfaces
var _ trinity.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the single message carried by the transaction.
func (tx *Tx) GetMsg() (trinity.Msg, error) {
	var msgs []trinity.Msg
	add := func(set bool, m trinity.Msg) {
		if set {
			msgs = append(msgs, m)
		}
	}
	add(tx.SendMsg != nil, tx.SendMsg)
	add(tx.TransferMsg != nil, tx.TransferMsg)
	add(tx.CreateChallengeMsg != nil, tx.CreateChallengeMsg)
	add(tx.PayFeeMsg != nil, tx.PayFeeMsg)
	add(tx.DepositMsg != nil, tx.DepositMsg)
	add(tx.VoteMsg != nil, tx.VoteMsg)
	add(tx.ClaimWinnerMsg != nil, tx.ClaimWinnerMsg)
	add(tx.ClaimRefundMsg != nil, tx.ClaimRefundMsg)

	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrInvalidMsg, "unable to decode")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidMsg, "%d messages in one transaction", len(msgs))
	}
}

// SetMsg places the message in the matching field of the envelope,
// replacing any message set before.
func (tx *Tx) SetMsg(msg trinity.Msg) error {
	signatures := tx.Signatures
	*tx = Tx{Signatures: signatures}

	switch m := msg.(type) {
	case *cash.SendMsg:
		tx.SendMsg = m
	case *asset.TransferMsg:
		tx.TransferMsg = m
	case *challenge.CreateMsg:
		tx.CreateChallengeMsg = m
	case *challenge.PayFeeMsg:
		tx.PayFeeMsg = m
	case *challenge.DepositMsg:
		tx.DepositMsg = m
	case *challenge.VoteMsg:
		tx.VoteMsg = m
	case *challenge.ClaimWinnerMsg:
		tx.ClaimWinnerMsg = m
	case *challenge.ClaimRefundMsg:
		tx.ClaimRefundMsg = m
	default:
		return errors.Wrapf(errors.ErrInvalidType, "unsupported message %T", msg)
	}
	return nil
}

// GetSignatures returns the signatures of the transaction signers.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	sigs := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = sigs
	return bz, err
}
