package app

import (
	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp runs transactions through a handler stack on top of the storage
// and query side of StoreApp.
type BaseApp struct {
	*StoreApp
	decoder trinity.TxDecoder
	handler trinity.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp wires a decoder and a handler stack to the store. With debug
// set, failed transactions report the full error chain.
func NewBaseApp(store *StoreApp, decoder trinity.TxDecoder, handler trinity.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store.WithDebug(debug),
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx executes a transaction against the block state.
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.decode(txBytes)
	if err != nil {
		return trinity.DeliverResponse(nil, err, b.debug)
	}
	ctx := trinity.WithLogInfo(b.BlockContext(), "call", "deliver_tx", "path", trinity.GetPath(tx))
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return trinity.DeliverResponse(res, err, b.debug)
}

// CheckTx validates a transaction against the mempool state.
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.decode(txBytes)
	if err != nil {
		return trinity.CheckResponse(nil, err, b.debug)
	}
	ctx := trinity.WithLogInfo(b.BlockContext(), "call", "check_tx", "path", trinity.GetPath(tx))
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return trinity.CheckResponse(res, err, b.debug)
}

// decode turns a decoder panic into an error, so garbage from the network
// cannot stop the node.
func (b BaseApp) decode(txBytes []byte) (tx trinity.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(txBytes)
}
