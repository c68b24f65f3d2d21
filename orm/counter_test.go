package orm

import (
	"encoding/binary"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/trinity/errors"
)

// Counter is a minimal model used to exercise buckets and indexes.
type Counter struct {
	Count int64 `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
}

type counterWire Counter

func (m *counterWire) Reset()         { *m = counterWire{} }
func (m *counterWire) String() string { return proto.CompactTextString(m) }
func (*counterWire) ProtoMessage()    {}

var _ CloneableData = (*Counter)(nil)

// NewCounter returns a counter initialized to given value.
func NewCounter(count int64) *Counter {
	return &Counter{Count: count}
}

func (c *Counter) Marshal() ([]byte, error) {
	return proto.Marshal((*counterWire)(c))
}

func (c *Counter) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*counterWire)(c))
}

func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrInvalidState, "negative count")
	}
	return nil
}

func (c *Counter) Copy() CloneableData {
	return &Counter{Count: c.Count}
}

// encodeSequence returns the big-endian representation of given value.
func encodeSequence(val int64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(val))
	return bz
}
