package crypto

import (
	"github.com/gogo/protobuf/proto"
)

// ExtensionName is the extension of the conditions signatures grant.
const ExtensionName = "sigs"

// Signer signs transactions without exposing the key material.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

// Signature is an ed25519 signature.
type Signature struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

type publicKeyWire PublicKey

func (m *publicKeyWire) Reset()         { *m = publicKeyWire{} }
func (m *publicKeyWire) String() string { return proto.CompactTextString(m) }
func (*publicKeyWire) ProtoMessage()    {}

type privateKeyWire PrivateKey

func (m *privateKeyWire) Reset()         { *m = privateKeyWire{} }
func (m *privateKeyWire) String() string { return proto.CompactTextString(m) }
func (*privateKeyWire) ProtoMessage()    {}

type signatureWire Signature

func (m *signatureWire) Reset()         { *m = signatureWire{} }
func (m *signatureWire) String() string { return proto.CompactTextString(m) }
func (*signatureWire) ProtoMessage()    {}

func (p *PublicKey) Marshal() ([]byte, error)   { return proto.Marshal((*publicKeyWire)(p)) }
func (p *PublicKey) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*publicKeyWire)(p)) }

func (p *PrivateKey) Marshal() ([]byte, error)   { return proto.Marshal((*privateKeyWire)(p)) }
func (p *PrivateKey) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*privateKeyWire)(p)) }

func (s *Signature) Marshal() ([]byte, error)   { return proto.Marshal((*signatureWire)(s)) }
func (s *Signature) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*signatureWire)(s)) }

// GetEd25519 is nil safe.
func (s *Signature) GetEd25519() []byte {
	if s == nil {
		return nil
	}
	return s.Ed25519
}
