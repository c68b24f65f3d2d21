package trinitytest

import (
	"crypto/rand"
	"testing"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/crypto"
)

// NewKey returns a new random private key.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns a signature condition of a new random key.
func NewCondition() trinity.Condition {
	return NewKey().PublicKey().Condition()
}

// RandomAddr returns an address no key owns, for players and treasuries
// that never sign.
func RandomAddr(t testing.TB) trinity.Address {
	t.Helper()
	addr := make(trinity.Address, trinity.AddressLength)
	if _, err := rand.Read(addr); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	return addr
}
