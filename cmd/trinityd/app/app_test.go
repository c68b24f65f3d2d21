package app

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/app"
	"github.com/iov-one/trinity/crypto"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/x/asset"
	"github.com/iov-one/trinity/x/cash"
	"github.com/iov-one/trinity/x/challenge"
	"github.com/iov-one/trinity/x/registry"
	"github.com/iov-one/trinity/x/sigs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

const chainID = "trinity-test"

// node drives a BaseApp block by block, signing every transaction with the
// next sequence of its signer.
type node struct {
	t      *testing.T
	app    app.BaseApp
	height int64
}

func newNode(t *testing.T, genesis interface{}) *node {
	t.Helper()
	appState, err := json.Marshal(genesis)
	require.NoError(t, err)

	base, err := Application(Name, Stack(nil), TxDecoder, "", false)
	require.NoError(t, err)
	base.WithInit(Initializers())
	base.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: appState})
	base.Commit()
	return &node{t: t, app: base, height: 1}
}

func (n *node) signedTx(key *crypto.PrivateKey, msg trinity.Msg) []byte {
	n.t.Helper()
	var tx Tx
	require.NoError(n.t, tx.SetMsg(msg))
	seq, err := sigs.NextNonce(n.app.DeliverStore(), key.PublicKey().Address())
	require.NoError(n.t, err)
	sig, err := sigs.SignTx(key, &tx, chainID, seq)
	require.NoError(n.t, err)
	tx.Signatures = []*sigs.StdSignature{sig}
	raw, err := tx.Marshal()
	require.NoError(n.t, err)
	return raw
}

// deliver runs the transaction in its own block and returns the result.
func (n *node) deliver(key *crypto.PrivateKey, msg trinity.Msg) abci.ResponseDeliverTx {
	n.t.Helper()
	raw := n.signedTx(key, msg)

	n.height++
	n.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{ChainID: chainID, Height: n.height, Time: time.Now()},
	})
	check := n.app.CheckTx(raw)
	res := n.app.DeliverTx(raw)
	n.app.EndBlock(abci.RequestEndBlock{Height: n.height})
	n.app.Commit()
	assert.Equal(n.t, check.Code, res.Code, "check and deliver disagree")
	return res
}

func (n *node) mustDeliver(key *crypto.PrivateKey, msg trinity.Msg) {
	n.t.Helper()
	res := n.deliver(key, msg)
	require.Equal(n.t, uint32(0), res.Code, "%T: %s", msg, res.Log)
}

func (n *node) challenge(p1 trinity.Address, id uint64) *challenge.Challenge {
	n.t.Helper()
	res := n.app.Query(abci.RequestQuery{Path: "/challenges", Data: challenge.ChallengeKey(p1, id)})
	require.Equal(n.t, uint32(0), res.Code, res.Log)
	var c challenge.Challenge
	require.NoError(n.t, app.UnmarshalOneResult(res.Value, &c))
	return &c
}

type actors struct {
	admin      *crypto.PrivateKey
	p1, p2     *crypto.PrivateKey
	mods       []*crypto.PrivateKey
	nft1, nft2 trinity.Address
}

func newActors() actors {
	a := actors{
		admin: crypto.GenPrivKeyEd25519(),
		p1:    crypto.GenPrivKeyEd25519(),
		p2:    crypto.GenPrivKeyEd25519(),
		nft1:  crypto.GenPrivKeyEd25519().PublicKey().Address(),
		nft2:  crypto.GenPrivKeyEd25519().PublicKey().Address(),
	}
	for i := 0; i < 3; i++ {
		a.mods = append(a.mods, crypto.GenPrivKeyEd25519())
	}
	return a
}

func (a actors) genesis() map[string]interface{} {
	admin := a.admin.PublicKey().Address()
	var mods []trinity.Address
	for _, m := range a.mods {
		mods = append(mods, m.PublicKey().Address())
	}
	return map[string]interface{}{
		"conf": map[string]interface{}{
			"registry": registry.Configuration{
				Admin:         admin,
				Treasury:      admin,
				DeploymentTag: make(registry.Tag, registry.TagLength),
				APISigners:    []trinity.Address{admin},
				Moderators:    mods,
			},
		},
		"cash": []cash.GenesisAccount{
			{Address: a.p1.PublicKey().Address(), Balance: 1000},
			{Address: a.p2.PublicKey().Address(), Balance: 1000},
		},
		"assets": []asset.GenesisHolding{
			{Owner: a.p1.PublicKey().Address(), Mint: a.nft1, Amount: 1},
			{Owner: a.p2.PublicKey().Address(), Mint: a.nft2, Amount: 1},
		},
	}
}

func TestChallengeLifecycleOverABCI(t *testing.T) {
	a := newActors()
	n := newNode(t, a.genesis())
	p1, p2 := a.p1.PublicKey().Address(), a.p2.PublicKey().Address()

	n.mustDeliver(a.admin, &challenge.CreateMsg{
		Creator:     a.admin.PublicKey().Address(),
		P1:          p1,
		P2:          p2,
		ChallengeID: 7,
		P1Fee:       100,
		P2Fee:       150,
		Nft1Mint:    a.nft1,
		Nft2Mint:    a.nft2,
	})
	assert.Equal(t, challenge.StatusPendingFee, n.challenge(p1, 7).Status)

	n.mustDeliver(a.p1, &challenge.PayFeeMsg{P1: p1, ChallengeID: 7, Payer: p1})
	n.mustDeliver(a.p2, &challenge.PayFeeMsg{P1: p1, ChallengeID: 7, Payer: p2})
	assert.Equal(t, challenge.StatusPendingEscrow, n.challenge(p1, 7).Status)

	n.mustDeliver(a.p1, &challenge.DepositMsg{P1: p1, ChallengeID: 7, Depositor: p1, Side: challenge.SideP1})
	n.mustDeliver(a.p2, &challenge.DepositMsg{P1: p1, ChallengeID: 7, Depositor: p2, Side: challenge.SideP2})
	assert.Equal(t, challenge.StatusReady, n.challenge(p1, 7).Status)

	for _, m := range a.mods {
		n.mustDeliver(m, &challenge.VoteMsg{
			P1:          p1,
			ChallengeID: 7,
			Moderator:   m.PublicKey().Address(),
			Outcome:     challenge.OutcomeP1Wins,
		})
	}
	c := n.challenge(p1, 7)
	assert.Equal(t, challenge.StatusCompleted, c.Status)
	assert.Equal(t, p1, c.Winner)

	// the loser cannot take the assets
	res := n.deliver(a.p2, &challenge.ClaimWinnerMsg{P1: p1, ChallengeID: 7, Claimer: p2})
	assert.Equal(t, challenge.ErrInvalidPayer.ABCICode(), res.Code)

	n.mustDeliver(a.p1, &challenge.ClaimWinnerMsg{P1: p1, ChallengeID: 7, Claimer: p1})
	c = n.challenge(p1, 7)
	assert.Equal(t, challenge.NFTClaimed, c.Nft1Status)
	assert.Equal(t, challenge.NFTClaimed, c.Nft2Status)

	db := n.app.DeliverStore()
	assets := AssetControl()
	for _, mint := range []trinity.Address{a.nft1, a.nft2} {
		held, err := assets.Balance(db, p1, mint)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), held)
	}
	treasury, err := CashControl().Balance(db, a.admin.PublicKey().Address())
	require.NoError(t, err)
	assert.Equal(t, uint64(250), treasury)
}

func TestTransactionRejections(t *testing.T) {
	a := newActors()
	n := newNode(t, a.genesis())
	p1, p2 := a.p1.PublicKey().Address(), a.p2.PublicKey().Address()

	create := &challenge.CreateMsg{
		Creator:     p1,
		P1:          p1,
		P2:          p2,
		ChallengeID: 1,
		Nft1Mint:    a.nft1,
		Nft2Mint:    a.nft2,
	}
	// only an API signer may create a challenge
	res := n.deliver(a.p1, create)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code)

	// a transaction without signatures carries no identity
	var tx Tx
	require.NoError(t, tx.SetMsg(&cash.SendMsg{Source: p1, Destination: p2, Amount: 1}))
	raw, err := tx.Marshal()
	require.NoError(t, err)
	check := n.app.CheckTx(raw)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), check.Code)

	// a replayed transaction is rejected
	send := n.signedTx(a.p2, &cash.SendMsg{Source: p2, Destination: p1, Amount: 10})
	assert.Equal(t, uint32(0), n.app.DeliverTx(send).Code)
	assert.Equal(t, sigs.ErrInvalidSequence.ABCICode(), n.app.DeliverTx(send).Code)

	// garbage does not decode
	assert.NotEqual(t, uint32(0), n.app.CheckTx([]byte{0xff, 0x01}).Code)
}

func TestTxEnvelope(t *testing.T) {
	var tx Tx
	_, err := tx.GetMsg()
	assert.True(t, errors.ErrInvalidMsg.Is(err))

	vote := &challenge.VoteMsg{Outcome: challenge.OutcomeCancel}
	require.NoError(t, tx.SetMsg(vote))
	msg, err := tx.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, vote, msg)

	// SetMsg replaces the previous message
	send := &cash.SendMsg{Amount: 3}
	require.NoError(t, tx.SetMsg(send))
	msg, err = tx.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, send, msg)

	tx.VoteMsg = vote
	_, err = tx.GetMsg()
	assert.True(t, errors.ErrInvalidMsg.Is(err))

	assert.True(t, errors.ErrInvalidType.Is(tx.SetMsg(&registryMsg{})))
}

func TestGenInitOptions(t *testing.T) {
	admin := crypto.GenPrivKeyEd25519().PublicKey().Address()
	mod := crypto.GenPrivKeyEd25519().PublicKey().Address()
	raw, err := GenInitOptions([]string{admin.String(), mod.String()})
	require.NoError(t, err)

	var opts trinity.Options
	require.NoError(t, json.Unmarshal(raw, &opts))
	base, err := Application(Name, Stack(nil), TxDecoder, "", false)
	require.NoError(t, err)
	require.NoError(t, Initializers().FromGenesis(opts, base.DeliverStore()))

	conf, err := registry.NewRegistry().Config(base.DeliverStore())
	require.NoError(t, err)
	assert.Equal(t, admin, conf.Admin)
	assert.Len(t, conf.Moderators, 2)

	_, err = GenInitOptions([]string{"not-an-address"})
	assert.Error(t, err)
}

func TestExamplesEncode(t *testing.T) {
	for _, ex := range Examples() {
		_, err := ex.Obj.Marshal()
		assert.NoError(t, err, ex.Filename)
	}
}

// registryMsg is a message no route knows about.
type registryMsg struct{}

func (registryMsg) Path() string             { return "registry/unknown" }
func (registryMsg) Validate() error          { return nil }
func (registryMsg) Marshal() ([]byte, error) { return nil, nil }
func (*registryMsg) Unmarshal([]byte) error  { return nil }
