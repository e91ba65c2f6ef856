package wallet

import (
	"strconv"

	"github.com/blockberries/webclient/types"
)

// Message types understood by the chain.
const (
	MsgClaimRewards            = "nomic/MsgClaimRewards"
	MsgClaimAirdrop1           = "nomic/MsgClaimAirdrop1"
	MsgClaimBtcDepositAirdrop  = "nomic/MsgClaimBtcDepositAirdrop"
	MsgClaimBtcWithdrawAirdrop = "nomic/MsgClaimBtcWithdrawAirdrop"
	MsgClaimIbcTransferAirdrop = "nomic/MsgClaimIbcTransferAirdrop"
	MsgClaimIbcBitcoin         = "nomic/MsgClaimIbcBitcoin"
	MsgDelegate                = "cosmos-sdk/MsgDelegate"
	MsgUndelegate              = "cosmos-sdk/MsgUndelegate"
	MsgBeginRedelegate         = "cosmos-sdk/MsgBeginRedelegate"
	MsgWithdraw                = "nomic/MsgWithdraw"
	MsgIbcTransferOut          = "nomic/MsgIbcTransferOut"
)

// StakingDenom is the denomination of staked and transferred amounts.
const StakingDenom = "unom"

func coin(amount uint64) map[string]any {
	return map[string]any{
		"amount": strconv.FormatUint(amount, 10),
		"denom":  StakingDenom,
	}
}

// ClaimRewardsMsg claims staking rewards.
func ClaimRewardsMsg() types.Msg { return types.NewMsg(MsgClaimRewards, nil) }

// ClaimAirdrop1Msg claims the first airdrop.
func ClaimAirdrop1Msg() types.Msg { return types.NewMsg(MsgClaimAirdrop1, nil) }

// ClaimBtcDepositAirdropMsg claims the bitcoin deposit airdrop.
func ClaimBtcDepositAirdropMsg() types.Msg { return types.NewMsg(MsgClaimBtcDepositAirdrop, nil) }

// ClaimBtcWithdrawAirdropMsg claims the bitcoin withdrawal airdrop.
func ClaimBtcWithdrawAirdropMsg() types.Msg { return types.NewMsg(MsgClaimBtcWithdrawAirdrop, nil) }

// ClaimIbcTransferAirdropMsg claims the IBC transfer airdrop.
func ClaimIbcTransferAirdropMsg() types.Msg { return types.NewMsg(MsgClaimIbcTransferAirdrop, nil) }

// ClaimIbcBitcoinMsg claims bitcoin received over IBC.
func ClaimIbcBitcoinMsg() types.Msg { return types.NewMsg(MsgClaimIbcBitcoin, nil) }

// DelegateMsg delegates amount from delegator to validator.
func DelegateMsg(delegator, validator types.Address, amount uint64) types.Msg {
	return types.NewMsg(MsgDelegate, map[string]any{
		"delegator_address": delegator.String(),
		"validator_address": validator.String(),
		"amount":            coin(amount),
	})
}

// UndelegateMsg unbonds amount delegated by delegator to validator.
func UndelegateMsg(delegator, validator types.Address, amount uint64) types.Msg {
	return types.NewMsg(MsgUndelegate, map[string]any{
		"delegator_address": delegator.String(),
		"validator_address": validator.String(),
		"amount":            coin(amount),
	})
}

// RedelegateMsg moves amount of delegator's stake from src to dst.
func RedelegateMsg(delegator, src, dst types.Address, amount uint64) types.Msg {
	return types.NewMsg(MsgBeginRedelegate, map[string]any{
		"delegator_address":     delegator.String(),
		"validator_src_address": src.String(),
		"validator_dst_address": dst.String(),
		"amount":                coin(amount),
	})
}

// WithdrawMsg withdraws amount of bridged bitcoin to a bitcoin address.
func WithdrawMsg(dst string, amount uint64) types.Msg {
	return types.NewMsg(MsgWithdraw, map[string]any{
		"amount":      strconv.FormatUint(amount, 10),
		"dst_address": dst,
	})
}

// IbcTransfer describes an outgoing IBC transfer.
type IbcTransfer struct {
	Amount           uint64
	Denom            string
	ChannelID        string
	PortID           string
	Sender           types.Address
	Receiver         string
	TimeoutTimestamp string
}

// IbcTransferOutMsg sends tokens to another chain. The amount is a
// JSON number, unlike the staking messages.
func IbcTransferOutMsg(t IbcTransfer) types.Msg {
	return types.NewMsg(MsgIbcTransferOut, map[string]any{
		"amount":            t.Amount,
		"denom":             t.Denom,
		"channel_id":        t.ChannelID,
		"port_id":           t.PortID,
		"receiver":          t.Receiver,
		"sender":            t.Sender.String(),
		"timeout_timestamp": t.TimeoutTimestamp,
	})
}
