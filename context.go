package trinity

import (
	"context"
	"fmt"
	"regexp"
	"time"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Context travels from the app through the decorators to the handlers.
type Context = context.Context

type ctxKey string

const (
	headerKey    ctxKey = "header"
	heightKey    ctxKey = "height"
	blockTimeKey ctxKey = "block time"
	chainIDKey   ctxKey = "chain id"
	loggerKey    ctxKey = "logger"
)

var (
	// DefaultLogger is returned by GetLogger when none was set.
	DefaultLogger = log.NewNopLogger()

	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// once stores a block scoped value. The values below are set by the app
// and a decorator overwriting one is a bug, so a second write panics.
func once(ctx Context, key ctxKey, value interface{}) Context {
	if ctx.Value(key) != nil {
		panic(fmt.Sprintf("%s already set", key))
	}
	return context.WithValue(ctx, key, value)
}

func WithHeader(ctx Context, header abci.Header) Context {
	return once(ctx, headerKey, header)
}

func GetHeader(ctx Context) (abci.Header, bool) {
	h, ok := ctx.Value(headerKey).(abci.Header)
	return h, ok
}

func WithHeight(ctx Context, height int64) Context {
	return once(ctx, heightKey, height)
}

// GetHeight is the height of the block being built, or of the last
// committed block before the first BeginBlock.
func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(heightKey).(int64)
	return h, ok
}

// WithBlockTime stores t in UTC, so every node formats it the same way.
func WithBlockTime(ctx Context, t time.Time) Context {
	return once(ctx, blockTimeKey, t.UTC())
}

func BlockTime(ctx Context) (time.Time, bool) {
	t, ok := ctx.Value(blockTimeKey).(time.Time)
	return t, ok
}

// WithChainID panics on an invalid id, ids are checked at genesis already.
func WithChainID(ctx Context, chainID string) Context {
	if !IsValidChainID(chainID) {
		panic(fmt.Sprintf("invalid chain id %q", chainID))
	}
	return once(ctx, chainIDKey, chainID)
}

// GetChainID panics before genesis. Signatures are bound to the chain id,
// so there is nothing sensible to verify them against without one.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(chainIDKey).(string)
	if !ok {
		panic("chain id is not in context")
	}
	return id
}

// WithLogger may be called any number of times, the innermost logger wins.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithLogInfo adds key value pairs to every line logged through the
// returned context.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(loggerKey).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}
