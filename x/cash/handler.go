package cash

import (
	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/x"
)

// Tags of a delivered send, holding the upper case hex addresses.
const (
	TagSender    = "sender"
	TagRecipient = "recipient"
)

func RegisterRoutes(r trinity.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathSendMsg, NewSendHandler(auth, control))
}

// RegisterQuery exposes the wallets under "/wallets".
func RegisterQuery(qr trinity.QueryRouter) {
	NewBucket().Register("wallets", qr)
}

// SendHandler moves coins between wallets when the source signed.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ trinity.Handler = SendHandler{}

func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{auth: auth, control: control}
}

// Check leaves the balance to Deliver.
func (h SendHandler) Check(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.CheckResult, error) {
	if _, err := h.load(ctx, tx); err != nil {
		return nil, err
	}
	return &trinity.CheckResult{GasAllocated: sendTxCost}, nil
}

func (h SendHandler) Deliver(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.DeliverResult, error) {
	msg, err := h.load(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	res := &trinity.DeliverResult{Log: msg.Memo}
	return res.AddTag(TagSender, []byte(msg.Source.String())).
		AddTag(TagRecipient, []byte(msg.Destination.String())), nil
}

func (h SendHandler) load(ctx trinity.Context, tx trinity.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := trinity.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Source, "account owner"); err != nil {
		return nil, err
	}
	return &msg, nil
}
