package trinity

import (
	"github.com/iov-one/trinity/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult is what a handler reports after a state transition went
// through. Failures travel as errors, never as a result.
type DeliverResult struct {
	// Data is machine readable, usually the key of the record the
	// message created or touched.
	Data []byte
	Log  string
	// Tags let tendermint index the transaction, so a client can search
	// for every transaction that touched one challenge.
	Tags []common.KVPair
}

// AddTag appends an index tag to the result. It is safe to call on the nil
// result a handler may return and hands back the result it extended.
func (d *DeliverResult) AddTag(key string, value []byte) *DeliverResult {
	if d == nil {
		d = &DeliverResult{}
	}
	d.Tags = append(d.Tags, common.KVPair{Key: []byte(key), Value: value})
	return d
}

// CheckResult is what a handler reports for a transaction that may enter
// the mempool.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated caps the work the transaction may do once delivered.
	GasAllocated int64
}

// DeliverResponse builds the ABCI answer to DeliverTx. An error wins over
// the result. Unregistered errors hide their message unless debug is set.
func DeliverResponse(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		code, log := errors.ABCIInfo(err, debug)
		return abci.ResponseDeliverTx{Code: code, Log: "cannot deliver tx: " + log}
	}
	if res == nil {
		return abci.ResponseDeliverTx{}
	}
	return abci.ResponseDeliverTx{Data: res.Data, Log: res.Log, Tags: res.Tags}
}

// CheckResponse builds the ABCI answer to CheckTx, the same way
// DeliverResponse does.
func CheckResponse(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		code, log := errors.ABCIInfo(err, debug)
		return abci.ResponseCheckTx{Code: code, Log: "cannot check tx: " + log}
	}
	if res == nil {
		return abci.ResponseCheckTx{}
	}
	return abci.ResponseCheckTx{Data: res.Data, Log: res.Log, GasWanted: res.GasAllocated}
}
