package asset

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/trinity"
)

// Holding is the number of units of a mint owned by an address.
type Holding struct {
	Owner  trinity.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Mint   trinity.Address `protobuf:"bytes,2,opt,name=mint,proto3" json:"mint,omitempty"`
	Amount uint64          `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

// TransferMsg moves Amount units of Mint from Source to Destination.
type TransferMsg struct {
	Source      trinity.Address `protobuf:"bytes,1,opt,name=source,proto3" json:"source,omitempty"`
	Destination trinity.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	Mint        trinity.Address `protobuf:"bytes,3,opt,name=mint,proto3" json:"mint,omitempty"`
	Amount      uint64          `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

type holdingWire Holding

func (m *holdingWire) Reset()         { *m = holdingWire{} }
func (m *holdingWire) String() string { return proto.CompactTextString(m) }
func (*holdingWire) ProtoMessage()    {}

type transferMsgWire TransferMsg

func (m *transferMsgWire) Reset()         { *m = transferMsgWire{} }
func (m *transferMsgWire) String() string { return proto.CompactTextString(m) }
func (*transferMsgWire) ProtoMessage()    {}

func (h *Holding) Marshal() ([]byte, error)   { return proto.Marshal((*holdingWire)(h)) }
func (h *Holding) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*holdingWire)(h)) }

func (m *TransferMsg) Marshal() ([]byte, error)   { return proto.Marshal((*transferMsgWire)(m)) }
func (m *TransferMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*transferMsgWire)(m)) }
