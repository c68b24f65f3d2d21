package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/trinity/crypto"
)

// UserData is the state of a signer, keyed by the address of its public key.
type UserData struct {
	Pubkey   *crypto.PublicKey `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64             `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

// StdSignature represents the signature, the identity of the signer
// (the Pubkey), and a sequence number to prevent replay attacks.
//
// A given signer must submit transactions with the sequence number
// increasing by 1 each time (starting at 0).
type StdSignature struct {
	Sequence  int64             `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Pubkey    *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Signature *crypto.Signature `protobuf:"bytes,4,opt,name=signature,proto3" json:"signature,omitempty"`
}

type userDataWire UserData

func (m *userDataWire) Reset()         { *m = userDataWire{} }
func (m *userDataWire) String() string { return proto.CompactTextString(m) }
func (*userDataWire) ProtoMessage()    {}

type stdSignatureWire StdSignature

func (m *stdSignatureWire) Reset()         { *m = stdSignatureWire{} }
func (m *stdSignatureWire) String() string { return proto.CompactTextString(m) }
func (*stdSignatureWire) ProtoMessage()    {}

func (u *UserData) Marshal() ([]byte, error)   { return proto.Marshal((*userDataWire)(u)) }
func (u *UserData) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*userDataWire)(u)) }

func (s *StdSignature) Marshal() ([]byte, error)   { return proto.Marshal((*stdSignatureWire)(s)) }
func (s *StdSignature) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*stdSignatureWire)(s)) }

// GetSequence is nil safe.
func (s *StdSignature) GetSequence() int64 {
	if s == nil {
		return 0
	}
	return s.Sequence
}
