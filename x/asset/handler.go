package asset

import (
	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r trinity.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathTransferMsg, NewTransferHandler(auth, control))
}

// RegisterQuery exposes holdings as "/assets" and "/assets/owner".
func RegisterQuery(qr trinity.QueryRouter) {
	NewBucket().Register("assets", qr)
}

// TransferHandler moves asset units between owners.
type TransferHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ trinity.Handler = TransferHandler{}

// NewTransferHandler creates a handler for TransferMsg
func NewTransferHandler(auth x.Authenticator, control Controller) TransferHandler {
	return TransferHandler{
		auth:    auth,
		control: control,
	}
}

func (h TransferHandler) Check(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &trinity.CheckResult{GasAllocated: transferTxCost}, nil
}

func (h TransferHandler) Deliver(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveAsset(db, msg.Mint, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "move asset")
	}
	return &trinity.DeliverResult{}, nil
}

func (h TransferHandler) validate(ctx trinity.Context, tx trinity.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := trinity.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Source, "asset owner"); err != nil {
		return nil, err
	}
	return &msg, nil
}
