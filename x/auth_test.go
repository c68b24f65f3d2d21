package x

import (
	"context"
	"testing"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/trinitytest"
	"github.com/iov-one/trinity/trinitytest/assert"
)

func TestChainAuth(t *testing.T) {
	p1 := trinitytest.NewCondition()
	p2 := trinitytest.NewCondition()
	moderator := trinitytest.NewCondition()

	signers := &trinitytest.CtxAuth{Key: "signers"}
	ctx := signers.SetConditions(context.Background(), p2, moderator)

	cases := map[string]struct {
		auth    Authenticator
		main    trinity.Condition
		all     []trinity.Condition
		outside trinity.Condition
	}{
		"nobody signed": {
			auth:    ChainAuth(),
			outside: p1,
		},
		"static signer first": {
			auth:    ChainAuth(&trinitytest.Auth{Signer: p1}, signers),
			main:    p1,
			all:     []trinity.Condition{p1, p2, moderator},
			outside: trinitytest.NewCondition(),
		},
		"context signers only": {
			auth:    ChainAuth(signers),
			main:    p2,
			all:     []trinity.Condition{p2, moderator},
			outside: p1,
		},
		"other context key": {
			auth:    ChainAuth(&trinitytest.CtxAuth{Key: "other"}),
			outside: p2,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.main, MainSigner(ctx, tc.auth))
			assert.Equal(t, tc.all, tc.auth.GetConditions(ctx))
			for _, c := range tc.all {
				assert.Nil(t, RequireSigner(ctx, tc.auth, c.Address(), "player"))
			}
			err := RequireSigner(ctx, tc.auth, tc.outside.Address(), "player")
			if !errors.ErrUnauthorized.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err := RequireSigner(ctx, tc.auth, nil, "player"); !errors.ErrUnauthorized.Is(err) {
				t.Fatalf("empty address accepted: %+v", err)
			}
		})
	}
}
