package sigs

import (
	"testing"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/crypto"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/store"
	"github.com/iov-one/trinity/trinitytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSignBytes(t *testing.T) {
	const chainID = "trinity-sign"
	payload := []byte("create:challenge")

	base, err := BuildSignBytes(payload, chainID, 17)
	require.NoError(t, err)
	// payload, then chain id, then the big endian sequence
	want := append([]byte("create:challenge"), chainID...)
	want = append(want, 0, 0, 0, 0, 0, 0, 0, 17)
	assert.Equal(t, want, base)

	fromTx, err := BuildSignBytesTx(NewStdTx(payload), chainID, 17)
	require.NoError(t, err)
	assert.Equal(t, base, fromTx)

	cases := map[string]struct {
		payload []byte
		chainID string
		seq     int64
		wantErr *errors.Error
	}{
		"other payload":     {payload: []byte("vote:cancel"), chainID: chainID, seq: 17},
		"other chain":       {payload: payload, chainID: chainID + "2", seq: 17},
		"other sequence":    {payload: payload, chainID: chainID, seq: 18},
		"negative sequence": {payload: payload, chainID: chainID, seq: -1, wantErr: ErrInvalidSequence},
		"short chain id":    {payload: payload, chainID: "bad", seq: 1, wantErr: errors.ErrInvalidInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := BuildSignBytes(tc.payload, tc.chainID, tc.seq)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.NotEqual(t, base, got)
			}
		})
	}
}

func TestVerifySignatureSequence(t *testing.T) {
	const chainID = "trinity-verify"
	db := store.MemStore()
	priv := crypto.GenPrivKeyEd25519()
	pub := priv.PublicKey()
	payload := []byte("pay:fee")

	sign := func(seq int64) *StdSignature {
		sig, err := SignTx(priv, NewStdTx(payload), chainID, seq)
		require.NoError(t, err)
		return sig
	}

	// signing is deterministic
	assert.Equal(t, sign(2), sign(2))

	tampered := sign(2)
	copy(tampered.Signature.GetEd25519(), []byte{42, 17, 99})

	steps := []struct {
		name    string
		sig     *StdSignature
		chainID string
		wantErr *errors.Error
	}{
		{"sequence must start at zero", sign(1), chainID, ErrInvalidSequence},
		{"empty signature", new(StdSignature), chainID, errors.ErrUnauthorized},
		{"first", sign(0), chainID, nil},
		{"next", sign(1), chainID, nil},
		{"replay", sign(1), chainID, ErrInvalidSequence},
		{"jump ahead", sign(13), chainID, ErrInvalidSequence},
		{"other chain", sign(2), "trinity-other", errors.ErrUnauthorized},
		{"tampered", tampered, chainID, errors.ErrUnauthorized},
	}
	for _, s := range steps {
		signer, err := VerifySignature(db, s.sig, payload, s.chainID)
		if !s.wantErr.Is(err) {
			t.Fatalf("%s: unexpected error: %+v", s.name, err)
		}
		if s.wantErr == nil {
			assert.Equal(t, pub.Condition(), signer, s.name)
		}
	}

	next, err := NextNonce(db, pub.Address())
	require.NoError(t, err)
	assert.Equal(t, int64(2), next)
	next, err = NextNonce(db, trinitytest.NewCondition().Address())
	require.NoError(t, err)
	assert.Equal(t, int64(0), next)
}

func TestVerifyTxSignatures(t *testing.T) {
	const chainID = "trinity-multi"
	db := store.MemStore()
	p1 := crypto.GenPrivKeyEd25519()
	p2 := crypto.GenPrivKeyEd25519()

	tx := NewStdTx([]byte("deposit:nft"))
	other := NewStdTx([]byte("deposit:other"))
	sign := func(key *crypto.PrivateKey, tx SignedTx, seq int64) *StdSignature {
		sig, err := SignTx(key, tx, chainID, seq)
		require.NoError(t, err)
		return sig
	}

	signers, err := VerifyTxSignatures(db, tx, chainID)
	require.NoError(t, err)
	assert.Empty(t, signers)

	tx.Signatures = []*StdSignature{sign(p1, other, 0)}
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	tx.Signatures = []*StdSignature{sign(p1, tx, 0)}
	signers, err = VerifyTxSignatures(db, tx, chainID)
	require.NoError(t, err)
	assert.Equal(t, []trinity.Condition{p1.PublicKey().Condition()}, signers)

	// a replayed signature fails the whole tx
	tx.Signatures = []*StdSignature{sign(p1, tx, 0), sign(p2, tx, 0)}
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	tx.Signatures = []*StdSignature{sign(p1, tx, 1), sign(p2, tx, 0)}
	signers, err = VerifyTxSignatures(db, tx, chainID)
	require.NoError(t, err)
	assert.Equal(t, []trinity.Condition{
		p1.PublicKey().Condition(),
		p2.PublicKey().Condition(),
	}, signers)
}

func TestStdSignatureCodec(t *testing.T) {
	priv := crypto.GenPrivKeyEd25519()
	sig, err := SignTx(priv, NewStdTx([]byte("payload")), "codec-chain", 7)
	require.NoError(t, err)

	raw, err := sig.Marshal()
	require.NoError(t, err)
	var got StdSignature
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, sig, &got)
	assert.NoError(t, got.Validate())
}

// StdTx is a signed transaction carrying a raw payload message.
type StdTx struct {
	trinity.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &trinitytest.Msg{RoutePath: "sigs/test", Serialized: payload}
	return &StdTx{Tx: &trinitytest.Tx{Msg: msg}}
}

func (tx StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}
