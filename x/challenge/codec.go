package challenge

import (
	"fmt"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/trinity"
)

// Status is the lifecycle stage of a challenge.
type Status int32

const (
	StatusPendingFee Status = iota + 1
	StatusPendingEscrow
	StatusReady
	StatusCompleted
	StatusCancelled
)

var statusNames = map[Status]string{
	StatusPendingFee:    "pending_fee",
	StatusPendingEscrow: "pending_escrow",
	StatusReady:         "ready",
	StatusCompleted:     "completed",
	StatusCancelled:     "cancelled",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int32(s))
}

// Terminal is true for statuses that accept no further votes.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// NFTStatus is the escrow stage of a single side asset.
type NFTStatus int32

const (
	NFTNotDeposited NFTStatus = iota + 1
	NFTDeposited
	NFTClaimed
	NFTRefunded
)

var nftStatusNames = map[NFTStatus]string{
	NFTNotDeposited: "not_deposited",
	NFTDeposited:    "deposited",
	NFTClaimed:      "claimed",
	NFTRefunded:     "refunded",
}

func (s NFTStatus) String() string {
	if name, ok := nftStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("nft_status(%d)", int32(s))
}

// Outcome is what a moderator votes for.
type Outcome int32

const (
	OutcomeP1Wins Outcome = iota + 1
	OutcomeP2Wins
	OutcomeCancel
)

func (o Outcome) String() string {
	switch o {
	case OutcomeP1Wins:
		return "p1_wins"
	case OutcomeP2Wins:
		return "p2_wins"
	case OutcomeCancel:
		return "cancel"
	default:
		return fmt.Sprintf("outcome(%d)", int32(o))
	}
}

// Side selects one of the two parties.
type Side int32

const (
	SideP1 Side = iota + 1
	SideP2
)

func (s Side) String() string {
	switch s {
	case SideP1:
		return "p1"
	case SideP2:
		return "p2"
	default:
		return fmt.Sprintf("side(%d)", int32(s))
	}
}

// Challenge is the state of a single wager between P1 and P2.
type Challenge struct {
	P1              trinity.Address   `protobuf:"bytes,1,opt,name=p1,proto3" json:"p1,omitempty"`
	P2              trinity.Address   `protobuf:"bytes,2,opt,name=p2,proto3" json:"p2,omitempty"`
	ChallengeID     uint64            `protobuf:"varint,3,opt,name=challenge_id,json=challengeId,proto3" json:"challenge_id,omitempty"`
	P1Fee           uint64            `protobuf:"varint,4,opt,name=p1_fee,json=p1Fee,proto3" json:"p1_fee,omitempty"`
	P2Fee           uint64            `protobuf:"varint,5,opt,name=p2_fee,json=p2Fee,proto3" json:"p2_fee,omitempty"`
	P1Paid          bool              `protobuf:"varint,6,opt,name=p1_paid,json=p1Paid,proto3" json:"p1_paid,omitempty"`
	P2Paid          bool              `protobuf:"varint,7,opt,name=p2_paid,json=p2Paid,proto3" json:"p2_paid,omitempty"`
	Nft1Mint        trinity.Address   `protobuf:"bytes,8,opt,name=nft1_mint,json=nft1Mint,proto3" json:"nft1_mint,omitempty"`
	Nft2Mint        trinity.Address   `protobuf:"bytes,9,opt,name=nft2_mint,json=nft2Mint,proto3" json:"nft2_mint,omitempty"`
	Nft1Status      NFTStatus         `protobuf:"varint,10,opt,name=nft1_status,json=nft1Status,proto3" json:"nft1_status,omitempty"`
	Nft2Status      NFTStatus         `protobuf:"varint,11,opt,name=nft2_status,json=nft2Status,proto3" json:"nft2_status,omitempty"`
	Status          Status            `protobuf:"varint,12,opt,name=status,proto3" json:"status,omitempty"`
	Winner          trinity.Address   `protobuf:"bytes,13,opt,name=winner,proto3" json:"winner,omitempty"`
	VotedModerators []trinity.Address `protobuf:"bytes,14,rep,name=voted_moderators,json=votedModerators,proto3" json:"voted_moderators,omitempty"`
	VotesForP1      uint32            `protobuf:"varint,15,opt,name=votes_for_p1,json=votesForP1,proto3" json:"votes_for_p1,omitempty"`
	VotesForP2      uint32            `protobuf:"varint,16,opt,name=votes_for_p2,json=votesForP2,proto3" json:"votes_for_p2,omitempty"`
	VotesToCancel   uint32            `protobuf:"varint,17,opt,name=votes_to_cancel,json=votesToCancel,proto3" json:"votes_to_cancel,omitempty"`
	// Version is bumped on every write and guards against stale updates.
	Version uint64 `protobuf:"varint,18,opt,name=version,proto3" json:"version,omitempty"`
}

// Custody mirrors the asset unit a challenge holds for one side.
type Custody struct {
	// Challenge is the primary key of the owning challenge.
	Challenge []byte          `protobuf:"bytes,1,opt,name=challenge,proto3" json:"challenge,omitempty"`
	Mint      trinity.Address `protobuf:"bytes,2,opt,name=mint,proto3" json:"mint,omitempty"`
	// Address is the custody account holding the unit in the asset ledger.
	Address trinity.Address `protobuf:"bytes,3,opt,name=address,proto3" json:"address,omitempty"`
	Amount  uint64          `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

// CreateMsg opens a new challenge. It must be signed by an API signer.
type CreateMsg struct {
	Creator     trinity.Address `protobuf:"bytes,1,opt,name=creator,proto3" json:"creator,omitempty"`
	P1          trinity.Address `protobuf:"bytes,2,opt,name=p1,proto3" json:"p1,omitempty"`
	P2          trinity.Address `protobuf:"bytes,3,opt,name=p2,proto3" json:"p2,omitempty"`
	ChallengeID uint64          `protobuf:"varint,4,opt,name=challenge_id,json=challengeId,proto3" json:"challenge_id,omitempty"`
	P1Fee       uint64          `protobuf:"varint,5,opt,name=p1_fee,json=p1Fee,proto3" json:"p1_fee,omitempty"`
	P2Fee       uint64          `protobuf:"varint,6,opt,name=p2_fee,json=p2Fee,proto3" json:"p2_fee,omitempty"`
	Nft1Mint    trinity.Address `protobuf:"bytes,7,opt,name=nft1_mint,json=nft1Mint,proto3" json:"nft1_mint,omitempty"`
	Nft2Mint    trinity.Address `protobuf:"bytes,8,opt,name=nft2_mint,json=nft2Mint,proto3" json:"nft2_mint,omitempty"`
}

// PayFeeMsg pays the service fee of the side owned by Payer.
type PayFeeMsg struct {
	P1          trinity.Address `protobuf:"bytes,1,opt,name=p1,proto3" json:"p1,omitempty"`
	ChallengeID uint64          `protobuf:"varint,2,opt,name=challenge_id,json=challengeId,proto3" json:"challenge_id,omitempty"`
	Payer       trinity.Address `protobuf:"bytes,3,opt,name=payer,proto3" json:"payer,omitempty"`
}

// DepositMsg escrows the asset of given side.
type DepositMsg struct {
	P1          trinity.Address `protobuf:"bytes,1,opt,name=p1,proto3" json:"p1,omitempty"`
	ChallengeID uint64          `protobuf:"varint,2,opt,name=challenge_id,json=challengeId,proto3" json:"challenge_id,omitempty"`
	Depositor   trinity.Address `protobuf:"bytes,3,opt,name=depositor,proto3" json:"depositor,omitempty"`
	Side        Side            `protobuf:"varint,4,opt,name=side,proto3" json:"side,omitempty"`
}

// VoteMsg is a moderator vote on the outcome of a challenge.
type VoteMsg struct {
	P1          trinity.Address `protobuf:"bytes,1,opt,name=p1,proto3" json:"p1,omitempty"`
	ChallengeID uint64          `protobuf:"varint,2,opt,name=challenge_id,json=challengeId,proto3" json:"challenge_id,omitempty"`
	Moderator   trinity.Address `protobuf:"bytes,3,opt,name=moderator,proto3" json:"moderator,omitempty"`
	Outcome     Outcome         `protobuf:"varint,4,opt,name=outcome,proto3" json:"outcome,omitempty"`
}

// ClaimWinnerMsg releases both escrowed assets to the winner.
type ClaimWinnerMsg struct {
	P1          trinity.Address `protobuf:"bytes,1,opt,name=p1,proto3" json:"p1,omitempty"`
	ChallengeID uint64          `protobuf:"varint,2,opt,name=challenge_id,json=challengeId,proto3" json:"challenge_id,omitempty"`
	Claimer     trinity.Address `protobuf:"bytes,3,opt,name=claimer,proto3" json:"claimer,omitempty"`
}

// ClaimRefundMsg returns the escrowed asset of a side after cancellation.
type ClaimRefundMsg struct {
	P1          trinity.Address `protobuf:"bytes,1,opt,name=p1,proto3" json:"p1,omitempty"`
	ChallengeID uint64          `protobuf:"varint,2,opt,name=challenge_id,json=challengeId,proto3" json:"challenge_id,omitempty"`
	Claimer     trinity.Address `protobuf:"bytes,3,opt,name=claimer,proto3" json:"claimer,omitempty"`
	Side        Side            `protobuf:"varint,4,opt,name=side,proto3" json:"side,omitempty"`
}

type challengeWire Challenge

func (m *challengeWire) Reset()         { *m = challengeWire{} }
func (m *challengeWire) String() string { return proto.CompactTextString(m) }
func (*challengeWire) ProtoMessage()    {}

type custodyWire Custody

func (m *custodyWire) Reset()         { *m = custodyWire{} }
func (m *custodyWire) String() string { return proto.CompactTextString(m) }
func (*custodyWire) ProtoMessage()    {}

type createMsgWire CreateMsg

func (m *createMsgWire) Reset()         { *m = createMsgWire{} }
func (m *createMsgWire) String() string { return proto.CompactTextString(m) }
func (*createMsgWire) ProtoMessage()    {}

type payFeeMsgWire PayFeeMsg

func (m *payFeeMsgWire) Reset()         { *m = payFeeMsgWire{} }
func (m *payFeeMsgWire) String() string { return proto.CompactTextString(m) }
func (*payFeeMsgWire) ProtoMessage()    {}

type depositMsgWire DepositMsg

func (m *depositMsgWire) Reset()         { *m = depositMsgWire{} }
func (m *depositMsgWire) String() string { return proto.CompactTextString(m) }
func (*depositMsgWire) ProtoMessage()    {}

type voteMsgWire VoteMsg

func (m *voteMsgWire) Reset()         { *m = voteMsgWire{} }
func (m *voteMsgWire) String() string { return proto.CompactTextString(m) }
func (*voteMsgWire) ProtoMessage()    {}

type claimWinnerMsgWire ClaimWinnerMsg

func (m *claimWinnerMsgWire) Reset()         { *m = claimWinnerMsgWire{} }
func (m *claimWinnerMsgWire) String() string { return proto.CompactTextString(m) }
func (*claimWinnerMsgWire) ProtoMessage()    {}

type claimRefundMsgWire ClaimRefundMsg

func (m *claimRefundMsgWire) Reset()         { *m = claimRefundMsgWire{} }
func (m *claimRefundMsgWire) String() string { return proto.CompactTextString(m) }
func (*claimRefundMsgWire) ProtoMessage()    {}

func (c *Challenge) Marshal() ([]byte, error)   { return proto.Marshal((*challengeWire)(c)) }
func (c *Challenge) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*challengeWire)(c)) }

func (c *Custody) Marshal() ([]byte, error)   { return proto.Marshal((*custodyWire)(c)) }
func (c *Custody) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*custodyWire)(c)) }

func (m *CreateMsg) Marshal() ([]byte, error)   { return proto.Marshal((*createMsgWire)(m)) }
func (m *CreateMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*createMsgWire)(m)) }

func (m *PayFeeMsg) Marshal() ([]byte, error)   { return proto.Marshal((*payFeeMsgWire)(m)) }
func (m *PayFeeMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*payFeeMsgWire)(m)) }

func (m *DepositMsg) Marshal() ([]byte, error)   { return proto.Marshal((*depositMsgWire)(m)) }
func (m *DepositMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*depositMsgWire)(m)) }

func (m *VoteMsg) Marshal() ([]byte, error)   { return proto.Marshal((*voteMsgWire)(m)) }
func (m *VoteMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*voteMsgWire)(m)) }

func (m *ClaimWinnerMsg) Marshal() ([]byte, error) { return proto.Marshal((*claimWinnerMsgWire)(m)) }
func (m *ClaimWinnerMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*claimWinnerMsgWire)(m))
}

func (m *ClaimRefundMsg) Marshal() ([]byte, error) { return proto.Marshal((*claimRefundMsgWire)(m)) }
func (m *ClaimRefundMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*claimRefundMsgWire)(m))
}
