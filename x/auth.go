package x

import (
	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
)

// Authenticator extracts authentication info from the context. Handlers
// receive one in their constructor so the signature scheme stays
// pluggable.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled by the transaction.
	GetConditions(trinity.Context) []trinity.Condition
	// HasAddress checks if any condition matches this address.
	HasAddress(trinity.Context, trinity.Address) bool
}

// MultiAuth accepts a signer vouched for by any of its members.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth(impls)
}

// GetConditions combines all Conditions, in Authenticator order.
func (m MultiAuth) GetConditions(ctx trinity.Context) []trinity.Condition {
	var res []trinity.Condition
	for _, impl := range m {
		res = append(res, impl.GetConditions(ctx)...)
	}
	return res
}

func (m MultiAuth) HasAddress(ctx trinity.Context, addr trinity.Address) bool {
	for _, impl := range m {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first condition if any, otherwise nil.
func MainSigner(ctx trinity.Context, auth Authenticator) trinity.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// RequireSigner returns ErrUnauthorized unless addr authorized the
// transaction. role names the missing party in the error.
func RequireSigner(ctx trinity.Context, auth Authenticator, addr trinity.Address, role string) error {
	if len(addr) == 0 {
		return errors.Wrapf(errors.ErrUnauthorized, "%s address missing", role)
	}
	if !auth.HasAddress(ctx, addr) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s signature missing", role)
	}
	return nil
}
