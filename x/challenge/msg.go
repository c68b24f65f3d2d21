package challenge

import (
	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
)

const (
	pathCreateMsg      = "challenge/create"
	pathPayFeeMsg      = "challenge/pay_fee"
	pathDepositMsg     = "challenge/deposit"
	pathVoteMsg        = "challenge/vote"
	pathClaimWinnerMsg = "challenge/claim_winner"
	pathClaimRefundMsg = "challenge/claim_refund"

	createChallengeCost int64 = 300
	payFeeCost          int64 = 100
	depositCost         int64 = 100
	voteCost            int64 = 50
	claimCost           int64 = 0
)

var (
	_ trinity.Msg = (*CreateMsg)(nil)
	_ trinity.Msg = (*PayFeeMsg)(nil)
	_ trinity.Msg = (*DepositMsg)(nil)
	_ trinity.Msg = (*VoteMsg)(nil)
	_ trinity.Msg = (*ClaimWinnerMsg)(nil)
	_ trinity.Msg = (*ClaimRefundMsg)(nil)
)

func (CreateMsg) Path() string      { return pathCreateMsg }
func (PayFeeMsg) Path() string      { return pathPayFeeMsg }
func (DepositMsg) Path() string     { return pathDepositMsg }
func (VoteMsg) Path() string        { return pathVoteMsg }
func (ClaimWinnerMsg) Path() string { return pathClaimWinnerMsg }
func (ClaimRefundMsg) Path() string { return pathClaimRefundMsg }

// Validate makes sure the terms are sensible. Both parties and both mints
// must differ, otherwise custody records and fee payments would collide.
func (m *CreateMsg) Validate() error {
	if err := m.Creator.Validate(); err != nil {
		return errors.Wrap(err, "creator")
	}
	if err := m.P1.Validate(); err != nil {
		return errors.Wrap(err, "p1")
	}
	if err := m.P2.Validate(); err != nil {
		return errors.Wrap(err, "p2")
	}
	if m.P1.Equals(m.P2) {
		return errors.Wrap(errors.ErrInvalidInput, "p1 and p2 must differ")
	}
	if err := m.Nft1Mint.Validate(); err != nil {
		return errors.Wrap(err, "nft1 mint")
	}
	if err := m.Nft2Mint.Validate(); err != nil {
		return errors.Wrap(err, "nft2 mint")
	}
	if m.Nft1Mint.Equals(m.Nft2Mint) {
		return errors.Wrap(errors.ErrInvalidInput, "nft mints must differ")
	}
	return nil
}

func validateRef(p1 trinity.Address) error {
	return errors.Wrap(p1.Validate(), "p1")
}

func validateSide(s Side) error {
	if s != SideP1 && s != SideP2 {
		return errors.Wrapf(errors.ErrInvalidInput, "unknown %s", s)
	}
	return nil
}

// Validate makes sure that this is sensible
func (m *PayFeeMsg) Validate() error {
	if err := validateRef(m.P1); err != nil {
		return err
	}
	return errors.Wrap(m.Payer.Validate(), "payer")
}

// Validate makes sure that this is sensible
func (m *DepositMsg) Validate() error {
	if err := validateRef(m.P1); err != nil {
		return err
	}
	if err := m.Depositor.Validate(); err != nil {
		return errors.Wrap(err, "depositor")
	}
	return validateSide(m.Side)
}

// Validate rejects unknown outcomes.
func (m *VoteMsg) Validate() error {
	if err := validateRef(m.P1); err != nil {
		return err
	}
	if err := m.Moderator.Validate(); err != nil {
		return errors.Wrap(err, "moderator")
	}
	switch m.Outcome {
	case OutcomeP1Wins, OutcomeP2Wins, OutcomeCancel:
		return nil
	default:
		return errors.Wrapf(errors.ErrInvalidInput, "unknown %s", m.Outcome)
	}
}

// Validate makes sure that this is sensible
func (m *ClaimWinnerMsg) Validate() error {
	if err := validateRef(m.P1); err != nil {
		return err
	}
	return errors.Wrap(m.Claimer.Validate(), "claimer")
}

// Validate makes sure that this is sensible
func (m *ClaimRefundMsg) Validate() error {
	if err := validateRef(m.P1); err != nil {
		return err
	}
	if err := m.Claimer.Validate(); err != nil {
		return errors.Wrap(err, "claimer")
	}
	return validateSide(m.Side)
}
