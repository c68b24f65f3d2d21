package app

import (
	"github.com/iov-one/trinity/commands"
	"github.com/iov-one/trinity/crypto"
	"github.com/iov-one/trinity/x/challenge"
	"github.com/iov-one/trinity/x/sigs"
)

// Examples generates some example structs to dump out with testgen
func Examples() []commands.Example {
	p1Key := crypto.GenPrivKeyEd25519()
	p1 := p1Key.PublicKey().Address()
	p2 := crypto.GenPrivKeyEd25519().PublicKey().Address()
	mod := crypto.GenPrivKeyEd25519().PublicKey().Address()
	nft1 := crypto.GenPrivKeyEd25519().PublicKey().Address()
	nft2 := crypto.GenPrivKeyEd25519().PublicKey().Address()

	user := &sigs.UserData{
		Pubkey:   p1Key.PublicKey(),
		Sequence: 17,
	}

	chal := challenge.NewChallenge(p1, p2, 1, 250, 250, nft1, nft2)

	create := &challenge.CreateMsg{
		Creator:     p1,
		P1:          p1,
		P2:          p2,
		ChallengeID: 1,
		P1Fee:       250,
		P2Fee:       250,
		Nft1Mint:    nft1,
		Nft2Mint:    nft2,
	}
	vote := &challenge.VoteMsg{
		P1:          p1,
		ChallengeID: 1,
		Moderator:   mod,
		Outcome:     challenge.OutcomeP1Wins,
	}

	var unsigned Tx
	if err := unsigned.SetMsg(create); err != nil {
		panic(err)
	}
	tx := unsigned
	sig, err := sigs.SignTx(p1Key, &tx, "test-123", 17)
	if err != nil {
		panic(err)
	}
	tx.Signatures = []*sigs.StdSignature{sig}

	return []commands.Example{
		{Filename: "priv_key", Obj: p1Key},
		{Filename: "pub_key", Obj: p1Key.PublicKey()},
		{Filename: "user", Obj: user},
		{Filename: "challenge", Obj: chal},
		{Filename: "create_msg", Obj: create},
		{Filename: "vote_msg", Obj: vote},
		{Filename: "unsigned_tx", Obj: &unsigned},
		{Filename: "signed_tx", Obj: &tx},
	}
}
