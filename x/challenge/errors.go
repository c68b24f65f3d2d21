package challenge

import "github.com/iov-one/trinity/errors"

var (
	// ErrInvalidPayer is returned when the signer is not the party an
	// action requires.
	ErrInvalidPayer = errors.Register(1000, "invalid payer")

	// ErrAlreadyVoted is returned when a moderator votes twice on the same
	// challenge.
	ErrAlreadyVoted = errors.Register(1001, "already voted")

	// ErrAlreadyPaid is returned when a side pays its fee twice.
	ErrAlreadyPaid = errors.Register(1002, "fee already paid")

	// ErrAlreadyDeposited is returned when a side escrows its asset twice.
	ErrAlreadyDeposited = errors.Register(1003, "asset already deposited")
)
