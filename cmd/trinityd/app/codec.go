package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/trinity/x/asset"
	"github.com/iov-one/trinity/x/cash"
	"github.com/iov-one/trinity/x/challenge"
	"github.com/iov-one/trinity/x/sigs"
)

// Tx is the envelope of every transaction accepted by trinityd. Exactly one
// of the message fields must be set.
type Tx struct {
	Signatures         []*sigs.StdSignature      `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	SendMsg            *cash.SendMsg             `protobuf:"bytes,2,opt,name=send_msg,json=sendMsg,proto3" json:"send_msg,omitempty"`
	TransferMsg        *asset.TransferMsg        `protobuf:"bytes,3,opt,name=transfer_msg,json=transferMsg,proto3" json:"transfer_msg,omitempty"`
	CreateChallengeMsg *challenge.CreateMsg      `protobuf:"bytes,5,opt,name=create_challenge_msg,json=createChallengeMsg,proto3" json:"create_challenge_msg,omitempty"`
	PayFeeMsg          *challenge.PayFeeMsg      `protobuf:"bytes,6,opt,name=pay_fee_msg,json=payFeeMsg,proto3" json:"pay_fee_msg,omitempty"`
	DepositMsg         *challenge.DepositMsg     `protobuf:"bytes,7,opt,name=deposit_msg,json=depositMsg,proto3" json:"deposit_msg,omitempty"`
	VoteMsg            *challenge.VoteMsg        `protobuf:"bytes,8,opt,name=vote_msg,json=voteMsg,proto3" json:"vote_msg,omitempty"`
	ClaimWinnerMsg     *challenge.ClaimWinnerMsg `protobuf:"bytes,9,opt,name=claim_winner_msg,json=claimWinnerMsg,proto3" json:"claim_winner_msg,omitempty"`
	ClaimRefundMsg     *challenge.ClaimRefundMsg `protobuf:"bytes,10,opt,name=claim_refund_msg,json=claimRefundMsg,proto3" json:"claim_refund_msg,omitempty"`
}

type txWire Tx

func (m *txWire) Reset()         { *m = txWire{} }
func (m *txWire) String() string { return proto.CompactTextString(m) }
func (*txWire) ProtoMessage()    {}

func (tx *Tx) Marshal() ([]byte, error)   { return proto.Marshal((*txWire)(tx)) }
func (tx *Tx) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*txWire)(tx)) }
