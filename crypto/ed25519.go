package crypto

import (
	"golang.org/x/crypto/ed25519"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
)

// Verify reports whether sig signs message with this key. Malformed keys
// and signatures never verify.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize || len(sig.GetEd25519()) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(p.Ed25519, message, sig.Ed25519)
}

// Condition is the permission a signature with this key grants.
func (p *PublicKey) Condition() trinity.Condition {
	return trinity.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address identifies the key holder, as a player or a moderator.
func (p *PublicKey) Address() trinity.Address {
	return p.Condition().Address()
}

var _ Signer = (*PrivateKey)(nil)

func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if p == nil || len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInvalidState, "invalid ed25519 private key")
	}
	return &Signature{Ed25519: ed25519.Sign(p.Ed25519, message)}, nil
}

func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 draws a new key from crypto/rand.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed derives a key from a 32 byte seed, for fixtures
// that need stable addresses.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}
