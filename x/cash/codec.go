package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/trinity"
)

// Wallet holds the coins of one address.
type Wallet struct {
	Balance uint64 `protobuf:"varint,1,opt,name=balance,proto3" json:"balance,omitempty"`
}

// SendMsg moves Amount from the Source wallet to the Destination wallet.
type SendMsg struct {
	Source      trinity.Address `protobuf:"bytes,1,opt,name=source,proto3" json:"source,omitempty"`
	Destination trinity.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      uint64          `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	// Memo is an optional human readable message.
	Memo string `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

type walletWire Wallet

func (m *walletWire) Reset()         { *m = walletWire{} }
func (m *walletWire) String() string { return proto.CompactTextString(m) }
func (*walletWire) ProtoMessage()    {}

type sendMsgWire SendMsg

func (m *sendMsgWire) Reset()         { *m = sendMsgWire{} }
func (m *sendMsgWire) String() string { return proto.CompactTextString(m) }
func (*sendMsgWire) ProtoMessage()    {}

func (w *Wallet) Marshal() ([]byte, error)   { return proto.Marshal((*walletWire)(w)) }
func (w *Wallet) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*walletWire)(w)) }

func (m *SendMsg) Marshal() ([]byte, error)   { return proto.Marshal((*sendMsgWire)(m)) }
func (m *SendMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*sendMsgWire)(m)) }
