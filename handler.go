package trinity

import (
	"encoding/json"

	"github.com/iov-one/trinity/errors"
)

// Checker decides whether a transaction may enter the mempool. It runs
// against the check state and must not write to the block state.
type Checker interface {
	Check(ctx Context, db KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer applies a transaction to the block state.
type Deliverer interface {
	Deliver(ctx Context, db KVStore, tx Tx) (*DeliverResult, error)
}

// Handler processes the messages routed to one path, for example
// "challenge/vote".
type Handler interface {
	Checker
	Deliverer
}

// Decorator runs around the next handler of the stack, to authenticate,
// log or isolate state. It may stop the call by not calling next.
type Decorator interface {
	Check(ctx Context, db KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, db KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is the setup side of a router.
type Registry interface {
	Handle(path string, h Handler)
}

// Options is the genesis app_state, one raw JSON document per extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the document stored under key into obj. A missing
// key leaves obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "genesis %q: %s", key, err)
	}
	return nil
}

// Initializer loads the genesis state of one extension.
type Initializer interface {
	FromGenesis(opts Options, db KVStore) error
}
