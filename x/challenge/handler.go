package challenge

import (
	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/gconf"
	"github.com/iov-one/trinity/orm"
	"github.com/iov-one/trinity/x"
	"github.com/iov-one/trinity/x/asset"
	"github.com/iov-one/trinity/x/cash"
	"github.com/iov-one/trinity/x/registry"
)

// Registry is the read side of the authorization registry.
type Registry interface {
	IsMember(db gconf.ReadStore, role registry.Role, addr trinity.Address) (bool, error)
	Treasury(db gconf.ReadStore) (trinity.Address, error)
}

var _ Registry = registry.Registry{}

// Tags of every delivered challenge message. TagChallenge holds the upper
// case hex key, TagStatus the status after the message.
const (
	TagChallenge = "challenge"
	TagStatus    = "status"
)

// delivered tags the result with the challenge, so a client can follow
// one challenge through its lifecycle.
func delivered(c *Challenge) *trinity.DeliverResult {
	res := &trinity.DeliverResult{Data: c.Key()}
	return res.AddTag(TagChallenge, []byte(trinity.Address(c.Key()).String())).
		AddTag(TagStatus, []byte(c.Status.String()))
}

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r trinity.Registry, auth x.Authenticator, reg Registry, cashCtrl cash.Controller, assetCtrl asset.Controller) {
	b := newBase(auth, reg)
	r.Handle(pathCreateMsg, CreateHandler{b})
	r.Handle(pathPayFeeMsg, PayFeeHandler{base: b, cash: cashCtrl})
	r.Handle(pathDepositMsg, DepositHandler{base: b, asset: assetCtrl})
	r.Handle(pathVoteMsg, VoteHandler{b})
	r.Handle(pathClaimWinnerMsg, ClaimWinnerHandler{base: b, asset: assetCtrl})
	r.Handle(pathClaimRefundMsg, ClaimRefundHandler{base: b, asset: assetCtrl})
}

// RegisterQuery exposes challenges as "/challenges", "/challenges/p2" and
// "/challenges/status", custody records as "/custody" and
// "/custody/challenge".
func RegisterQuery(qr trinity.QueryRouter) {
	NewChallengeBucket().Register("challenges", qr)
	NewCustodyBucket().Register("custody", qr)
}

// base holds what every challenge handler needs.
type base struct {
	auth     x.Authenticator
	registry Registry
	bucket   ChallengeBucket
	custody  orm.ModelBucket
}

func newBase(auth x.Authenticator, reg Registry) base {
	return base{
		auth:     auth,
		registry: reg,
		bucket:   NewChallengeBucket(),
		custody:  NewCustodyBucket(),
	}
}

// requireSigner fails with ErrUnauthorized if addr did not sign the
// transaction.
func (b base) requireSigner(ctx trinity.Context, addr trinity.Address, who string) error {
	return x.RequireSigner(ctx, b.auth, addr, who)
}

// requireRole fails with ErrUnauthorized unless addr signed the
// transaction and was granted role in the registry.
func (b base) requireRole(ctx trinity.Context, db trinity.KVStore, role registry.Role, addr trinity.Address) error {
	if err := b.requireSigner(ctx, addr, role.String()); err != nil {
		return err
	}
	ok, err := b.registry.IsMember(db, role, addr)
	if err != nil {
		return errors.Wrap(err, "registry")
	}
	if !ok {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not a trusted %s", addr, role)
	}
	return nil
}

// release moves the unit held in custody for mint to dest and empties the
// custody record.
func (b base) release(db trinity.KVStore, ctrl asset.Controller, challengeKey []byte, mint, dest trinity.Address) error {
	key := CustodyKey(challengeKey, mint)
	var c Custody
	if err := b.custody.One(db, key, &c); err != nil {
		return errors.Wrapf(err, "custody %X", key)
	}
	if c.Amount == 0 {
		return errors.Wrapf(errors.ErrInvalidState, "custody %X is empty", key)
	}
	if err := ctrl.MoveAsset(db, mint, c.Address, dest, c.Amount); err != nil {
		return errors.Wrap(err, "release asset")
	}
	c.Amount = 0
	return b.custody.Put(db, key, &c)
}

// CreateHandler opens new challenges on behalf of API signers.
type CreateHandler struct {
	base
}

var _ trinity.Handler = CreateHandler{}

// NewCreateHandler returns a handler for CreateMsg.
func NewCreateHandler(auth x.Authenticator, reg Registry) CreateHandler {
	return CreateHandler{newBase(auth, reg)}
}

func (h CreateHandler) Check(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &trinity.CheckResult{GasAllocated: createChallengeCost}, nil
}

// Deliver stores the challenge. No funds or assets are moved.
func (h CreateHandler) Deliver(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	c := NewChallenge(msg.P1, msg.P2, msg.ChallengeID, msg.P1Fee, msg.P2Fee, msg.Nft1Mint, msg.Nft2Mint)
	if err := h.bucket.Create(db, c); err != nil {
		return nil, errors.Wrap(err, "cannot store challenge")
	}
	challengesCreated.Inc()
	trinity.GetLogger(ctx).Debug("challenge created", "challenge", trinity.Address(c.Key()), "status", c.Status)
	return delivered(c), nil
}

func (h CreateHandler) validate(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*CreateMsg, error) {
	var msg CreateMsg
	if err := trinity.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.requireRole(ctx, db, registry.RoleAPISigner, msg.Creator); err != nil {
		return nil, err
	}
	key := ChallengeKey(msg.P1, msg.ChallengeID)
	switch err := h.bucket.Has(db, key); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "challenge %d of %s", msg.ChallengeID, msg.P1)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	return &msg, nil
}

// PayFeeHandler collects service fees into the treasury.
type PayFeeHandler struct {
	base
	cash cash.Controller
}

var _ trinity.Handler = PayFeeHandler{}

// NewPayFeeHandler returns a handler for PayFeeMsg.
func NewPayFeeHandler(auth x.Authenticator, reg Registry, ctrl cash.Controller) PayFeeHandler {
	return PayFeeHandler{base: newBase(auth, reg), cash: ctrl}
}

func (h PayFeeHandler) Check(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &trinity.CheckResult{GasAllocated: payFeeCost}, nil
}

// Deliver transfers the fee of the payer side to the treasury. A zero fee
// transfers nothing.
func (h PayFeeHandler) Deliver(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.DeliverResult, error) {
	msg, c, fee, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if fee > 0 {
		treasury, err := h.registry.Treasury(db)
		if err != nil {
			return nil, errors.Wrap(err, "treasury")
		}
		if err := h.cash.MoveCoins(db, msg.Payer, treasury, fee); err != nil {
			return nil, errors.Wrap(err, "cannot pay fee")
		}
	}
	if err := h.bucket.Update(db, c); err != nil {
		return nil, err
	}
	return delivered(c), nil
}

func (h PayFeeHandler) validate(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*PayFeeMsg, *Challenge, uint64, error) {
	var msg PayFeeMsg
	if err := trinity.LoadMsg(tx, &msg); err != nil {
		return nil, nil, 0, errors.Wrap(err, "load msg")
	}
	if err := h.requireSigner(ctx, msg.Payer, "payer"); err != nil {
		return nil, nil, 0, err
	}
	c, err := h.bucket.Load(db, ChallengeKey(msg.P1, msg.ChallengeID))
	if err != nil {
		return nil, nil, 0, err
	}
	fee, err := c.PayFee(msg.Payer)
	if err != nil {
		return nil, nil, 0, err
	}
	return &msg, c, fee, nil
}

// DepositHandler escrows the asset of one side into custody.
type DepositHandler struct {
	base
	asset asset.Controller
}

var _ trinity.Handler = DepositHandler{}

// NewDepositHandler returns a handler for DepositMsg.
func NewDepositHandler(auth x.Authenticator, reg Registry, ctrl asset.Controller) DepositHandler {
	return DepositHandler{base: newBase(auth, reg), asset: ctrl}
}

func (h DepositHandler) Check(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &trinity.CheckResult{GasAllocated: depositCost}, nil
}

// Deliver moves one unit of the side asset into the custody address of the
// challenge and records it.
func (h DepositHandler) Deliver(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.DeliverResult, error) {
	msg, c, mint, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	key := c.Key()
	custody := &Custody{
		Challenge: key,
		Mint:      mint,
		Address:   CustodyAddress(key, mint),
		Amount:    1,
	}
	if err := h.asset.MoveAsset(db, mint, msg.Depositor, custody.Address, custody.Amount); err != nil {
		return nil, errors.Wrap(err, "cannot escrow asset")
	}
	if err := h.custody.Put(db, CustodyKey(key, mint), custody); err != nil {
		return nil, errors.Wrap(err, "cannot store custody")
	}
	if err := h.bucket.Update(db, c); err != nil {
		return nil, err
	}
	return delivered(c), nil
}

func (h DepositHandler) validate(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*DepositMsg, *Challenge, trinity.Address, error) {
	var msg DepositMsg
	if err := trinity.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	if err := h.requireSigner(ctx, msg.Depositor, "depositor"); err != nil {
		return nil, nil, nil, err
	}
	c, err := h.bucket.Load(db, ChallengeKey(msg.P1, msg.ChallengeID))
	if err != nil {
		return nil, nil, nil, err
	}
	mint, err := c.Deposit(msg.Depositor, msg.Side)
	if err != nil {
		return nil, nil, nil, err
	}
	return &msg, c, mint, nil
}

// VoteHandler accounts moderator votes and finalizes challenges once an
// outcome reaches the quorum.
type VoteHandler struct {
	base
}

var _ trinity.Handler = VoteHandler{}

// NewVoteHandler returns a handler for VoteMsg.
func NewVoteHandler(auth x.Authenticator, reg Registry) VoteHandler {
	return VoteHandler{newBase(auth, reg)}
}

func (h VoteHandler) Check(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &trinity.CheckResult{GasAllocated: voteCost}, nil
}

func (h VoteHandler) Deliver(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.DeliverResult, error) {
	msg, c, finalized, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Update(db, c); err != nil {
		return nil, err
	}
	challengeVotes.WithLabelValues(msg.Outcome.String()).Inc()
	if finalized {
		challengesFinalized.WithLabelValues(c.Status.String()).Inc()
		trinity.GetLogger(ctx).Info("challenge finalized",
			"challenge", trinity.Address(c.Key()),
			"status", c.Status,
			"outcome", msg.Outcome)
	}
	return delivered(c), nil
}

func (h VoteHandler) validate(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*VoteMsg, *Challenge, bool, error) {
	var msg VoteMsg
	if err := trinity.LoadMsg(tx, &msg); err != nil {
		return nil, nil, false, errors.Wrap(err, "load msg")
	}
	if err := h.requireRole(ctx, db, registry.RoleModerator, msg.Moderator); err != nil {
		return nil, nil, false, err
	}
	c, err := h.bucket.Load(db, ChallengeKey(msg.P1, msg.ChallengeID))
	if err != nil {
		return nil, nil, false, err
	}
	finalized, err := c.Vote(msg.Moderator, msg.Outcome)
	if err != nil {
		return nil, nil, false, err
	}
	return &msg, c, finalized, nil
}

// ClaimWinnerHandler releases both escrowed assets to the winner.
type ClaimWinnerHandler struct {
	base
	asset asset.Controller
}

var _ trinity.Handler = ClaimWinnerHandler{}

// NewClaimWinnerHandler returns a handler for ClaimWinnerMsg.
func NewClaimWinnerHandler(auth x.Authenticator, reg Registry, ctrl asset.Controller) ClaimWinnerHandler {
	return ClaimWinnerHandler{base: newBase(auth, reg), asset: ctrl}
}

func (h ClaimWinnerHandler) Check(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &trinity.CheckResult{GasAllocated: claimCost}, nil
}

func (h ClaimWinnerHandler) Deliver(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.DeliverResult, error) {
	c, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	key := c.Key()
	for _, mint := range []trinity.Address{c.Nft1Mint, c.Nft2Mint} {
		if err := h.release(db, h.asset, key, mint, c.Winner); err != nil {
			return nil, err
		}
	}
	if err := h.bucket.Update(db, c); err != nil {
		return nil, err
	}
	challengePayouts.WithLabelValues("winner").Add(2)
	return delivered(c), nil
}

func (h ClaimWinnerHandler) validate(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*Challenge, error) {
	var msg ClaimWinnerMsg
	if err := trinity.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.requireSigner(ctx, msg.Claimer, "claimer"); err != nil {
		return nil, err
	}
	c, err := h.bucket.Load(db, ChallengeKey(msg.P1, msg.ChallengeID))
	if err != nil {
		return nil, err
	}
	if err := c.ClaimWinner(msg.Claimer); err != nil {
		return nil, err
	}
	return c, nil
}

// ClaimRefundHandler returns escrowed assets of a cancelled challenge.
type ClaimRefundHandler struct {
	base
	asset asset.Controller
}

var _ trinity.Handler = ClaimRefundHandler{}

// NewClaimRefundHandler returns a handler for ClaimRefundMsg.
func NewClaimRefundHandler(auth x.Authenticator, reg Registry, ctrl asset.Controller) ClaimRefundHandler {
	return ClaimRefundHandler{base: newBase(auth, reg), asset: ctrl}
}

func (h ClaimRefundHandler) Check(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &trinity.CheckResult{GasAllocated: claimCost}, nil
}

// Deliver returns the asset of the claimer side. Claiming an asset that
// was never deposited succeeds without any change.
func (h ClaimRefundHandler) Deliver(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*trinity.DeliverResult, error) {
	msg, c, refunded, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if !refunded {
		return delivered(c), nil
	}
	if err := h.release(db, h.asset, c.Key(), c.Mint(msg.Side), msg.Claimer); err != nil {
		return nil, err
	}
	if err := h.bucket.Update(db, c); err != nil {
		return nil, err
	}
	challengePayouts.WithLabelValues("refund").Inc()
	return delivered(c), nil
}

func (h ClaimRefundHandler) validate(ctx trinity.Context, db trinity.KVStore, tx trinity.Tx) (*ClaimRefundMsg, *Challenge, bool, error) {
	var msg ClaimRefundMsg
	if err := trinity.LoadMsg(tx, &msg); err != nil {
		return nil, nil, false, errors.Wrap(err, "load msg")
	}
	if err := h.requireSigner(ctx, msg.Claimer, "claimer"); err != nil {
		return nil, nil, false, err
	}
	c, err := h.bucket.Load(db, ChallengeKey(msg.P1, msg.ChallengeID))
	if err != nil {
		return nil, nil, false, err
	}
	refunded, err := c.ClaimRefund(msg.Claimer, msg.Side)
	if err != nil {
		return nil, nil, false, err
	}
	return &msg, c, refunded, nil
}
