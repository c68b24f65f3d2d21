package challenge

import (
	"encoding/binary"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/orm"
)

const (
	// BucketName is where challenges are stored.
	BucketName = "chal"
	// CustodyBucketName is where custody records are stored.
	CustodyBucketName = "custody"

	// QuorumThreshold is the number of matching votes that finalizes a
	// challenge. It does not depend on the number of moderators.
	QuorumThreshold = 3
)

var _ orm.Model = (*Challenge)(nil)

// NewChallenge returns a challenge with the initial state for given terms.
// A zero fee marks its side as paid.
func NewChallenge(p1, p2 trinity.Address, id, p1Fee, p2Fee uint64, nft1Mint, nft2Mint trinity.Address) *Challenge {
	c := &Challenge{
		P1:          p1,
		P2:          p2,
		ChallengeID: id,
		P1Fee:       p1Fee,
		P2Fee:       p2Fee,
		P1Paid:      p1Fee == 0,
		P2Paid:      p2Fee == 0,
		Nft1Mint:    nft1Mint,
		Nft2Mint:    nft2Mint,
		Nft1Status:  NFTNotDeposited,
		Nft2Status:  NFTNotDeposited,
		Status:      StatusPendingFee,
	}
	if c.P1Paid && c.P2Paid {
		c.Status = StatusPendingEscrow
	}
	return c
}

// Validate checks the consistency of the stored state.
func (c *Challenge) Validate() error {
	if err := c.P1.Validate(); err != nil {
		return errors.Wrap(err, "p1")
	}
	if err := c.P2.Validate(); err != nil {
		return errors.Wrap(err, "p2")
	}
	if err := c.Nft1Mint.Validate(); err != nil {
		return errors.Wrap(err, "nft1 mint")
	}
	if err := c.Nft2Mint.Validate(); err != nil {
		return errors.Wrap(err, "nft2 mint")
	}
	if _, ok := statusNames[c.Status]; !ok {
		return errors.Wrapf(errors.ErrInvalidModel, "%s", c.Status)
	}
	if _, ok := nftStatusNames[c.Nft1Status]; !ok {
		return errors.Wrapf(errors.ErrInvalidModel, "nft1 %s", c.Nft1Status)
	}
	if _, ok := nftStatusNames[c.Nft2Status]; !ok {
		return errors.Wrapf(errors.ErrInvalidModel, "nft2 %s", c.Nft2Status)
	}
	if (c.Status == StatusCompleted) != (c.Winner != nil) {
		return errors.Wrap(errors.ErrInvalidModel, "winner must be set only when completed")
	}
	if c.VotesForP1 > QuorumThreshold || c.VotesForP2 > QuorumThreshold || c.VotesToCancel > QuorumThreshold {
		return errors.Wrap(errors.ErrInvalidModel, "vote counter above quorum")
	}
	if n := c.VotesForP1 + c.VotesForP2 + c.VotesToCancel; int(n) != len(c.VotedModerators) {
		return errors.Wrapf(errors.ErrInvalidModel, "%d votes from %d moderators", n, len(c.VotedModerators))
	}
	return nil
}

// Copy returns a deep copy of the challenge.
func (c *Challenge) Copy() orm.CloneableData {
	cp := *c
	cp.P1 = copyAddr(c.P1)
	cp.P2 = copyAddr(c.P2)
	cp.Nft1Mint = copyAddr(c.Nft1Mint)
	cp.Nft2Mint = copyAddr(c.Nft2Mint)
	cp.Winner = copyAddr(c.Winner)
	if c.VotedModerators != nil {
		cp.VotedModerators = make([]trinity.Address, len(c.VotedModerators))
		for i, m := range c.VotedModerators {
			cp.VotedModerators[i] = copyAddr(m)
		}
	}
	return &cp
}

func copyAddr(a trinity.Address) trinity.Address {
	if a == nil {
		return nil
	}
	return append(trinity.Address(nil), a...)
}

// Key returns the primary key of the challenge.
func (c *Challenge) Key() []byte {
	return ChallengeKey(c.P1, c.ChallengeID)
}

// ChallengeKey returns the primary key of the challenge created for p1 with
// given id.
func ChallengeKey(p1 trinity.Address, id uint64) []byte {
	key := make([]byte, len(p1)+8)
	copy(key, p1)
	binary.BigEndian.PutUint64(key[len(p1):], id)
	return key
}

// side returns which party addr is. A zero side means addr is not a party.
func (c *Challenge) side(addr trinity.Address) Side {
	switch {
	case c.P1.Equals(addr):
		return SideP1
	case c.P2.Equals(addr):
		return SideP2
	default:
		return 0
	}
}

// owner returns the party of given side.
func (c *Challenge) owner(s Side) trinity.Address {
	if s == SideP1 {
		return c.P1
	}
	return c.P2
}

// Mint returns the asset mint staked by given side.
func (c *Challenge) Mint(s Side) trinity.Address {
	if s == SideP1 {
		return c.Nft1Mint
	}
	return c.Nft2Mint
}

func (c *Challenge) nftStatus(s Side) *NFTStatus {
	if s == SideP1 {
		return &c.Nft1Status
	}
	return &c.Nft2Status
}

// PayFee marks the fee of the payer side as paid and returns the amount
// that must be transferred to the treasury.
func (c *Challenge) PayFee(payer trinity.Address) (uint64, error) {
	s := c.side(payer)
	if s == 0 {
		return 0, errors.Wrapf(ErrInvalidPayer, "%s is not a party", payer)
	}
	if c.Status != StatusPendingFee {
		return 0, errors.Wrapf(errors.ErrInvalidState, "cannot pay fee in %s", c.Status)
	}
	paid, fee := &c.P1Paid, c.P1Fee
	if s == SideP2 {
		paid, fee = &c.P2Paid, c.P2Fee
	}
	if *paid {
		return 0, errors.Wrapf(ErrAlreadyPaid, "%s fee", s)
	}
	*paid = true
	if c.P1Paid && c.P2Paid {
		c.Status = StatusPendingEscrow
	}
	return fee, nil
}

// Deposit marks the asset of given side as escrowed and returns its mint.
func (c *Challenge) Deposit(depositor trinity.Address, s Side) (trinity.Address, error) {
	if s != SideP1 && s != SideP2 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "%s", s)
	}
	if !c.owner(s).Equals(depositor) {
		return nil, errors.Wrapf(ErrInvalidPayer, "%s is not %s", depositor, s)
	}
	if c.Status != StatusPendingEscrow {
		return nil, errors.Wrapf(errors.ErrInvalidState, "cannot deposit in %s", c.Status)
	}
	st := c.nftStatus(s)
	if *st != NFTNotDeposited {
		return nil, errors.Wrapf(ErrAlreadyDeposited, "%s asset is %s", s, *st)
	}
	*st = NFTDeposited
	if c.Nft1Status == NFTDeposited && c.Nft2Status == NFTDeposited {
		c.Status = StatusReady
	}
	return c.Mint(s), nil
}

// Vote records the vote of a moderator. Membership of the moderator must be
// verified by the caller. It returns true if this vote finalized the
// challenge.
func (c *Challenge) Vote(moderator trinity.Address, o Outcome) (bool, error) {
	for _, m := range c.VotedModerators {
		if m.Equals(moderator) {
			return false, errors.Wrapf(ErrAlreadyVoted, "moderator %s", moderator)
		}
	}
	if c.Status.Terminal() {
		return false, errors.Wrapf(errors.ErrInvalidState, "challenge is %s", c.Status)
	}

	var counter *uint32
	switch o {
	case OutcomeP1Wins:
		counter = &c.VotesForP1
	case OutcomeP2Wins:
		counter = &c.VotesForP2
	case OutcomeCancel:
		counter = &c.VotesToCancel
	default:
		return false, errors.Wrapf(errors.ErrInvalidInput, "%s", o)
	}
	if o != OutcomeCancel && c.Status != StatusReady {
		return false, errors.Wrapf(errors.ErrInvalidState, "cannot vote %s in %s", o, c.Status)
	}

	c.VotedModerators = append(c.VotedModerators, moderator)
	*counter++
	if *counter < QuorumThreshold {
		return false, nil
	}
	switch o {
	case OutcomeP1Wins:
		c.Winner = c.P1
		c.Status = StatusCompleted
	case OutcomeP2Wins:
		c.Winner = c.P2
		c.Status = StatusCompleted
	case OutcomeCancel:
		c.Status = StatusCancelled
	}
	return true, nil
}

// ClaimWinner marks both escrowed assets as claimed by the winner.
func (c *Challenge) ClaimWinner(claimer trinity.Address) error {
	if c.Status != StatusCompleted {
		return errors.Wrapf(errors.ErrInvalidState, "cannot claim in %s", c.Status)
	}
	if !c.Winner.Equals(claimer) {
		return errors.Wrapf(ErrInvalidPayer, "%s is not the winner", claimer)
	}
	if c.Nft1Status != NFTDeposited || c.Nft2Status != NFTDeposited {
		return errors.Wrapf(errors.ErrInvalidState, "assets are %s and %s", c.Nft1Status, c.Nft2Status)
	}
	c.Nft1Status = NFTClaimed
	c.Nft2Status = NFTClaimed
	return nil
}

// ClaimRefund marks the asset of given side as refunded. It returns false
// without a change if that asset was never deposited.
func (c *Challenge) ClaimRefund(claimer trinity.Address, s Side) (bool, error) {
	if c.Status != StatusCancelled {
		return false, errors.Wrapf(errors.ErrInvalidState, "cannot refund in %s", c.Status)
	}
	if s != SideP1 && s != SideP2 {
		return false, errors.Wrapf(errors.ErrInvalidInput, "%s", s)
	}
	if !c.owner(s).Equals(claimer) {
		return false, errors.Wrapf(ErrInvalidPayer, "%s is not %s", claimer, s)
	}
	st := c.nftStatus(s)
	switch *st {
	case NFTNotDeposited:
		return false, nil
	case NFTDeposited:
		*st = NFTRefunded
		return true, nil
	default:
		return false, errors.Wrapf(errors.ErrInvalidState, "%s asset is %s", s, *st)
	}
}

func p2Indexer(obj orm.Object) ([]byte, error) {
	c, err := asChallenge(obj)
	if err != nil {
		return nil, err
	}
	return c.P2, nil
}

func statusIndexer(obj orm.Object) ([]byte, error) {
	c, err := asChallenge(obj)
	if err != nil {
		return nil, err
	}
	return StatusIndex(c.Status), nil
}

// StatusIndex is the value under which the "status" index references
// challenges.
func StatusIndex(s Status) []byte {
	return []byte{byte(s)}
}

func asChallenge(obj orm.Object) (*Challenge, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot index nil")
	}
	c, ok := obj.Value().(*Challenge)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj.Value())
	}
	return c, nil
}

// ChallengeBucket stores challenges with a Version that Update bumps.
type ChallengeBucket struct {
	orm.ModelBucket
}

// NewChallengeBucket returns a bucket indexed by p2 and by status.
func NewChallengeBucket() ChallengeBucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Challenge{})).
		WithIndex("p2", p2Indexer, false).
		WithIndex("status", statusIndexer, false)
	return ChallengeBucket{ModelBucket: orm.NewModelBucket(b)}
}

// Load returns the challenge stored under key or ErrNotFound.
func (b ChallengeBucket) Load(db trinity.ReadOnlyKVStore, key []byte) (*Challenge, error) {
	var c Challenge
	if err := b.One(db, key, &c); err != nil {
		return nil, errors.Wrapf(err, "challenge %X", key)
	}
	return &c, nil
}

// Create stores a new challenge. It fails with ErrDuplicate if the key is
// already taken.
func (b ChallengeBucket) Create(db trinity.KVStore, c *Challenge) error {
	key := c.Key()
	switch err := b.Has(db, key); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "challenge %X", key)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	c.Version = 1
	return b.Put(db, key, c)
}

// Update stores c if the stored version is still the one c was loaded with,
// and bumps the version. A stale write fails with ErrInvalidState.
//
// Transactions run one at a time and every handler loads and updates
// within the same transaction, so no handler reaches the stale case. The
// check guards callers that keep a loaded challenge across transactions.
func (b ChallengeBucket) Update(db trinity.KVStore, c *Challenge) error {
	stored, err := b.Load(db, c.Key())
	if err != nil {
		return err
	}
	if stored.Version != c.Version {
		return errors.Wrapf(errors.ErrInvalidState, "stale challenge version %d, stored %d", c.Version, stored.Version)
	}
	c.Version++
	return b.Put(db, c.Key(), c)
}

var _ orm.Model = (*Custody)(nil)

// Validate requires a challenge reference and the custody addresses.
func (c *Custody) Validate() error {
	if len(c.Challenge) == 0 {
		return errors.Wrap(errors.ErrEmpty, "challenge")
	}
	if err := c.Mint.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	if err := c.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	return nil
}

// Copy returns a deep copy of the custody record.
func (c *Custody) Copy() orm.CloneableData {
	return &Custody{
		Challenge: append([]byte(nil), c.Challenge...),
		Mint:      copyAddr(c.Mint),
		Address:   copyAddr(c.Address),
		Amount:    c.Amount,
	}
}

// CustodyKey returns the key of the custody record of mint held by the
// challenge stored under challengeKey.
func CustodyKey(challengeKey []byte, mint trinity.Address) []byte {
	key := make([]byte, 0, len(challengeKey)+len(mint))
	key = append(key, challengeKey...)
	return append(key, mint...)
}

// CustodyCondition owns the escrowed unit of mint for a challenge.
func CustodyCondition(challengeKey []byte, mint trinity.Address) trinity.Condition {
	return trinity.NewCondition(BucketName, "custody", CustodyKey(challengeKey, mint))
}

// CustodyAddress is the asset ledger account of CustodyCondition.
func CustodyAddress(challengeKey []byte, mint trinity.Address) trinity.Address {
	return CustodyCondition(challengeKey, mint).Address()
}

func custodyChallengeIndexer(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot index nil")
	}
	c, ok := obj.Value().(*Custody)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj.Value())
	}
	return c.Challenge, nil
}

// NewCustodyBucket returns a bucket of custody records indexed by
// challenge.
func NewCustodyBucket() orm.ModelBucket {
	b := orm.NewBucket(CustodyBucketName, orm.NewSimpleObj(nil, &Custody{})).
		WithIndex("challenge", custodyChallengeIndexer, false)
	return orm.NewModelBucket(b)
}
