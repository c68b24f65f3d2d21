package trinitytest

import "github.com/iov-one/trinity"

// calls counts Check and Deliver invocations, failed ones included.
type calls struct {
	check   int
	deliver int
}

func (c *calls) CheckCallCount() int   { return c.check }
func (c *calls) DeliverCallCount() int { return c.deliver }
func (c *calls) CallCount() int        { return c.check + c.deliver }

// Handler is a mock trinity.Handler returning the configured result and
// error from each call.
type Handler struct {
	calls
	CheckResult   trinity.CheckResult
	CheckErr      error
	DeliverResult trinity.DeliverResult
	DeliverErr    error
}

var _ trinity.Handler = (*Handler)(nil)

func (h *Handler) Check(trinity.Context, trinity.KVStore, trinity.Tx) (*trinity.CheckResult, error) {
	h.check++
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(trinity.Context, trinity.KVStore, trinity.Tx) (*trinity.DeliverResult, error) {
	h.deliver++
	res := h.DeliverResult
	return &res, h.DeliverErr
}

// Decorator is a mock trinity.Decorator. A set CheckErr or DeliverErr is
// returned without calling the next handler.
type Decorator struct {
	calls
	CheckErr   error
	DeliverErr error
}

var _ trinity.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx, next trinity.Checker) (*trinity.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return &trinity.CheckResult{}, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx, next trinity.Deliverer) (*trinity.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return &trinity.DeliverResult{}, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate wraps h with a single decorator.
func Decorate(h trinity.Handler, d trinity.Decorator) trinity.Handler {
	return decorated{h: h, d: d}
}

type decorated struct {
	h trinity.Handler
	d trinity.Decorator
}

func (dh decorated) Check(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.CheckResult, error) {
	return dh.d.Check(ctx, db, tx, dh.h)
}

func (dh decorated) Deliver(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.DeliverResult, error) {
	return dh.d.Deliver(ctx, db, tx, dh.h)
}
