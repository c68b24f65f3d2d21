package trinitytest

import (
	"context"
	"fmt"

	"github.com/iov-one/trinity"
)

// Auth authenticates a fixed set of conditions, whatever the context.
// Signer, when set, is reported after Signers.
type Auth struct {
	Signer  trinity.Condition
	Signers []trinity.Condition
}

func (a *Auth) GetConditions(trinity.Context) []trinity.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	res := make([]trinity.Condition, 0, len(a.Signers)+1)
	res = append(res, a.Signers...)
	return append(res, a.Signer)
}

func (a *Auth) HasAddress(ctx trinity.Context, addr trinity.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates the conditions stored in the context under Key.
type CtxAuth struct {
	Key string
}

// SetConditions returns a child context authenticating given conditions.
func (a *CtxAuth) SetConditions(ctx trinity.Context, conds ...trinity.Condition) trinity.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx trinity.Context) []trinity.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]trinity.Condition)
	if !ok {
		panic(fmt.Sprintf("context key %q holds %T", a.Key, val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx trinity.Context, addr trinity.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []trinity.Condition, addr trinity.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
