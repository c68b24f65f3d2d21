package sigs

import (
	"encoding/binary"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/crypto"
	"github.com/iov-one/trinity/errors"
)

// SignedTx is a transaction the Decorator can authenticate.
type SignedTx interface {
	// GetSignBytes serializes the transaction without its signatures.
	GetSignBytes() ([]byte, error)
	GetSignatures() []*StdSignature
}

func (s *StdSignature) Validate() error {
	switch {
	case s.GetSequence() < 0:
		return errors.Wrap(ErrInvalidSequence, "negative")
	case s.Pubkey == nil:
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	case s.Signature == nil:
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

// BuildSignBytes appends the chain id and the big endian sequence to the
// transaction bytes, so a signature is only good on one chain and at one
// position of the signer's history.
func BuildSignBytes(txBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !trinity.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "chain id %q", chainID)
	}
	out := make([]byte, len(txBytes)+len(chainID)+8)
	n := copy(out, txBytes)
	n += copy(out[n:], chainID)
	binary.BigEndian.PutUint64(out[n:], uint64(seq))
	return out, nil
}

func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	raw, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(raw, chainID, seq)
}

// SignTx signs tx for the given chain and sequence. Attach the result to
// the transaction before marshalling it.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	raw, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(raw)
	if err != nil {
		return nil, err
	}
	return &StdSignature{Pubkey: signer.PublicKey(), Signature: sig, Sequence: seq}, nil
}

// VerifyTxSignatures verifies every signature of tx and returns the signer
// conditions in signature order. One bad signature fails the transaction.
func VerifyTxSignatures(db trinity.KVStore, tx SignedTx, chainID string) ([]trinity.Condition, error) {
	raw, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()
	signers := make([]trinity.Condition, len(sigs))
	for i, sig := range sigs {
		if signers[i], err = VerifySignature(db, sig, raw, chainID); err != nil {
			return nil, err
		}
	}
	return signers, nil
}

// VerifySignature checks sig over txBytes and consumes the sequence of the
// signer in db.
func VerifySignature(db trinity.KVStore, sig *StdSignature, txBytes []byte, chainID string) (trinity.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	signed, err := BuildSignBytes(txBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !sig.Pubkey.Verify(signed, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}

	accounts := NewBucket()
	obj, err := accounts.GetOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	if err := AsUser(obj).CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := accounts.Save(db, obj); err != nil {
		return nil, err
	}
	return sig.Pubkey.Condition(), nil
}
