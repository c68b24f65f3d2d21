package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
)

var validPath = regexp.MustCompile(`^[a-z0-9_/]+$`).MatchString

// Router sends every message to the handler registered for its path, like
// "challenge/create".
type Router struct {
	routes map[string]trinity.Handler
}

var (
	_ trinity.Registry = (*Router)(nil)
	_ trinity.Handler  = (*Router)(nil)
)

func NewRouter() *Router {
	return &Router{routes: make(map[string]trinity.Handler)}
}

// Handle panics on a malformed or already registered path. Routes are
// registered at startup, where that is a programming error.
func (r *Router) Handle(path string, h trinity.Handler) {
	if !validPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

func (r *Router) Check(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.CheckResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

func (r *Router) Deliver(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.DeliverResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}

func (r *Router) route(tx trinity.Tx) (trinity.Handler, error) {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return nil, errors.Wrap(err, "cannot load msg")
	case msg == nil:
		return nil, errors.Wrap(errors.ErrInvalidState, "nil message")
	}
	h, ok := r.routes[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", msg.Path())
	}
	return h, nil
}
