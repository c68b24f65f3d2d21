package app

import (
	"reflect"

	"github.com/iov-one/trinity"
)

/*
Decorators is a stack of decorators still waiting for the handler they
wrap. The first decorator runs first:

  app.ChainDecorators(
    utils.NewLogging(),
    utils.NewRecovery(),
    sigs.NewDecorator(),
    utils.DeliverSavepoint(),
  ).WithHandler(router)
*/
type Decorators struct {
	chain []trinity.Decorator
}

// ChainDecorators starts a stack. Nil decorators, including typed nil
// pointers, are skipped so optional layers can be passed unconditionally.
func ChainDecorators(chain ...trinity.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a new stack with more decorators at the bottom.
func (d Decorators) Chain(chain ...trinity.Decorator) Decorators {
	out := make([]trinity.Decorator, 0, len(d.chain)+len(chain))
	out = append(out, d.chain...)
	for _, dec := range chain {
		if !isNilDecorator(dec) {
			out = append(out, dec)
		}
	}
	return Decorators{chain: out}
}

func isNilDecorator(d trinity.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack over h.
func (d Decorators) WithHandler(h trinity.Handler) trinity.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = layer{dec: d.chain[i], next: h}
	}
	return h
}

type layer struct {
	dec  trinity.Decorator
	next trinity.Handler
}

func (l layer) Check(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.CheckResult, error) {
	return l.dec.Check(ctx, db, tx, l.next)
}

func (l layer) Deliver(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.DeliverResult, error) {
	return l.dec.Deliver(ctx, db, tx, l.next)
}

// ChainInitializers hands the genesis options to every initializer in
// order and stops at the first failure.
func ChainInitializers(inits ...trinity.Initializer) trinity.Initializer {
	return initializers(inits)
}

type initializers []trinity.Initializer

func (all initializers) FromGenesis(opts trinity.Options, db trinity.KVStore) error {
	for _, init := range all {
		if err := init.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
