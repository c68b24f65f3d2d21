/*
Package utils holds the decorators every transaction of the ledger runs
through: panic recovery, logging, metrics, result tags and savepoints.
*/
package utils

import (
	"time"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Recovery converts a panic in the wrapped handler into an ErrPanic error.
type Recovery struct{}

var _ trinity.Decorator = Recovery{}

func NewRecovery() Recovery { return Recovery{} }

func (Recovery) Check(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx, next trinity.Checker) (_ *trinity.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx, next trinity.Deliverer) (_ *trinity.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}

// Logging writes one entry per transaction with its path and duration.
// Failures are logged as errors, delivered transactions as info and checked
// ones as debug.
type Logging struct{}

var _ trinity.Decorator = Logging{}

func NewLogging() Logging { return Logging{} }

func (Logging) Check(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx, next trinity.Checker) (*trinity.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	logger := txLogger(ctx, tx, start)
	if err != nil {
		logger.Error("check failed", "err", err)
	} else {
		logger.Debug(res.Log)
	}
	return res, err
}

func (Logging) Deliver(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx, next trinity.Deliverer) (*trinity.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	logger := txLogger(ctx, tx, start)
	if err != nil {
		logger.Error("deliver failed", "err", err)
	} else {
		logger.Info(res.Log)
	}
	return res, err
}

func txLogger(ctx trinity.Context, tx trinity.Tx, start time.Time) log.Logger {
	return trinity.GetLogger(ctx).With(
		"path", trinity.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)
}

// Savepoint runs the wrapped handler inside a cache layer. The layer is
// written when the handler succeeds and discarded when it fails, so a failed
// challenge operation never leaves a partial update behind.
type Savepoint struct {
	deliver bool
}

var _ trinity.Decorator = Savepoint{}

// CheckSavepoint isolates CheckTx only.
func CheckSavepoint() Savepoint { return Savepoint{deliver: false} }

// DeliverSavepoint isolates DeliverTx only.
func DeliverSavepoint() Savepoint { return Savepoint{deliver: true} }

func (s Savepoint) Check(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx, next trinity.Checker) (*trinity.CheckResult, error) {
	if s.deliver {
		return next.Check(ctx, db, tx)
	}
	var res *trinity.CheckResult
	err := isolate(db, func(kv trinity.KVStore) (err error) {
		res, err = next.Check(ctx, kv, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx, next trinity.Deliverer) (*trinity.DeliverResult, error) {
	if !s.deliver {
		return next.Deliver(ctx, db, tx)
	}
	var res *trinity.DeliverResult
	err := isolate(db, func(kv trinity.KVStore) (err error) {
		res, err = next.Deliver(ctx, kv, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// isolate runs fn on a cache layer of db. Stores that cannot be cache
// wrapped are passed through as they are.
func isolate(db trinity.KVStore, fn func(trinity.KVStore) error) error {
	cacheable, ok := db.(trinity.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	layer := cacheable.CacheWrap()
	if err := fn(layer); err != nil {
		layer.Discard()
		return err
	}
	return errors.Wrap(layer.Write(), "write savepoint")
}
