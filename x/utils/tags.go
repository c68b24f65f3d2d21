package utils

import (
	"encoding/hex"
	"sort"
	"strings"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/store"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is the tag holding the path of a delivered message.
const ActionKey = "action"

// Tag values of a written key.
const (
	TagSet    = "s"
	TagDelete = "d"
)

// Tagger adds tendermint search tags to every successful DeliverTx. Tags set
// by the handler come first, then the message path under ActionKey, then one
// tag per written key: the upper case hex key with TagSet or TagDelete. A
// client can subscribe to a single challenge or custody record that way.
type Tagger struct{}

var _ trinity.Decorator = Tagger{}

func NewTagger() Tagger { return Tagger{} }

func (Tagger) Check(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx, next trinity.Checker) (*trinity.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (Tagger) Deliver(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx, next trinity.Deliverer) (*trinity.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	recording := store.NewRecordingStore(db)
	res, err := next.Deliver(ctx, recording, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, common.KVPair{Key: []byte(ActionKey), Value: []byte(msg.Path())})
	res.Tags = append(res.Tags, writeTags(recording.(store.Recorder).Changes())...)
	return res, nil
}

// writeTags returns the tags of changes in key order.
func writeTags(changes map[string][]byte) []common.KVPair {
	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tags := make([]common.KVPair, len(keys))
	for i, k := range keys {
		op := TagSet
		if changes[k] == nil {
			op = TagDelete
		}
		tags[i] = common.KVPair{
			Key:   []byte(strings.ToUpper(hex.EncodeToString([]byte(k)))),
			Value: []byte(op),
		}
	}
	return tags
}
