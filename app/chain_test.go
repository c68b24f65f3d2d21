package app

import (
	"context"
	"testing"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/trinitytest"
	"github.com/iov-one/trinity/x/utils"
	"github.com/stretchr/testify/assert"
)

// panicAtHeight panics whenever the context height is at least the
// configured one.
type panicAtHeight int64

func (p panicAtHeight) Check(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx, next trinity.Checker) (*trinity.CheckResult, error) {
	if h, _ := trinity.GetHeight(ctx); h >= int64(p) {
		panic("too high")
	}
	return next.Check(ctx, db, tx)
}

func (p panicAtHeight) Deliver(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx, next trinity.Deliverer) (*trinity.DeliverResult, error) {
	if h, _ := trinity.GetHeight(ctx); h >= int64(p) {
		panic("too high")
	}
	return next.Deliver(ctx, db, tx)
}

func TestChain(t *testing.T) {
	c1 := &trinitytest.Decorator{}
	c2 := &trinitytest.Decorator{}
	c3 := &trinitytest.Decorator{}
	h := &trinitytest.Handler{}

	var nilDecorator *trinitytest.Decorator
	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		utils.NewRecovery(),
		nilDecorator,
		c2,
		panicAtHeight(6),
		c3,
	).WithHandler(h)

	bg := context.Background()
	tx := &trinitytest.Tx{Msg: &trinitytest.Msg{RoutePath: "challenge/vote"}}

	_, err := stack.Check(bg, nil, tx)
	assert.NoError(t, err)
	ctx := trinity.WithHeight(bg, 4)
	_, err = stack.Deliver(ctx, nil, tx)
	assert.NoError(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// the panic is turned into an error by the recovery decorator
	ctx = trinity.WithHeight(bg, 8)
	_, err = stack.Check(ctx, nil, tx)
	assert.True(t, errors.ErrPanic.Is(err))
	_, err = stack.Deliver(ctx, nil, tx)
	assert.True(t, errors.ErrPanic.Is(err))

	assert.Equal(t, 4, c1.CallCount())
	assert.Equal(t, 4, c2.CallCount())
	// nothing below the panic is reached
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())
}
