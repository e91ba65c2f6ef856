package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/blockberries/webclient/types"
	"github.com/blockberries/webclient/wallet"

	"github.com/spf13/cobra"
)

// NewTxCmd returns the tx command group.
func NewTxCmd() *cobra.Command {
	txCmd := &cobra.Command{
		Use:   "tx",
		Short: "Sign and broadcast transactions",
	}

	txCmd.AddCommand(
		newClaimCmd("claim", "Claim staking rewards", (*wallet.Wallet).Claim),
		newClaimCmd("claim-airdrop", "Claim the first airdrop", (*wallet.Wallet).ClaimAirdrop),
		newClaimCmd("claim-btc-deposit-airdrop", "Claim the bitcoin deposit airdrop", (*wallet.Wallet).ClaimBtcDepositAirdrop),
		newClaimCmd("claim-btc-withdraw-airdrop", "Claim the bitcoin withdrawal airdrop", (*wallet.Wallet).ClaimBtcWithdrawAirdrop),
		newClaimCmd("claim-ibc-transfer-airdrop", "Claim the IBC transfer airdrop", (*wallet.Wallet).ClaimIbcTransferAirdrop),
		newClaimCmd("claim-ibc-btc", "Claim bitcoin received over IBC", (*wallet.Wallet).ClaimIncomingIbcBtc),
		NewDelegateCmd(),
		NewUnbondCmd(),
		NewRedelegateCmd(),
		NewWithdrawCmd(),
		NewIbcTransferCmd(),
	)
	return txCmd
}

// runTx loads a signing client, runs submit and prints the gateway's
// answer.
func runTx(cmd *cobra.Command, submit func(context.Context, *wallet.Wallet) (types.BroadcastResult, error)) error {
	c, err := loadClient(cmd, true)
	if err != nil {
		return err
	}
	defer c.Close()

	res, err := submit(cmd.Context(), c.wallet)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), res)
	return nil
}

func newClaimCmd(use, short string, claim func(*wallet.Wallet, context.Context) (types.BroadcastResult, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTx(cmd, func(ctx context.Context, w *wallet.Wallet) (types.BroadcastResult, error) {
				return claim(w, ctx)
			})
		},
	}
}

func parseAmount(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return n, nil
}

// NewDelegateCmd returns the tx delegate command.
func NewDelegateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delegate [validator-addr] [amount]",
		Short: "Delegate unom to a validator",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			val, err := types.ParseAddress(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			return runTx(cmd, func(ctx context.Context, w *wallet.Wallet) (types.BroadcastResult, error) {
				return w.Delegate(ctx, val, amount)
			})
		},
	}
}

// NewUnbondCmd returns the tx unbond command.
func NewUnbondCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unbond [validator-addr] [amount]",
		Short: "Undelegate unom from a validator",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			val, err := types.ParseAddress(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			return runTx(cmd, func(ctx context.Context, w *wallet.Wallet) (types.BroadcastResult, error) {
				return w.Unbond(ctx, val, amount)
			})
		},
	}
}

// NewRedelegateCmd returns the tx redelegate command.
func NewRedelegateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "redelegate [src-validator-addr] [dst-validator-addr] [amount]",
		Short: "Move a delegation between validators",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := types.ParseAddress(args[0])
			if err != nil {
				return err
			}
			dst, err := types.ParseAddress(args[1])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}
			return runTx(cmd, func(ctx context.Context, w *wallet.Wallet) (types.BroadcastResult, error) {
				return w.Redelegate(ctx, src, dst, amount)
			})
		},
	}
}

// NewWithdrawCmd returns the tx withdraw command.
func NewWithdrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw [btc-addr] [amount]",
		Short: "Withdraw bridged bitcoin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			return runTx(cmd, func(ctx context.Context, w *wallet.Wallet) (types.BroadcastResult, error) {
				return w.Withdraw(ctx, args[0], amount)
			})
		},
	}
}

const (
	flagChannel = "channel"
	flagPort    = "port"
	flagDenom   = "denom"
	flagTimeout = "timeout-timestamp"
)

// NewIbcTransferCmd returns the tx ibc-transfer command.
func NewIbcTransferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ibc-transfer [receiver] [amount]",
		Short: "Send tokens to another chain over IBC",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			f := cmd.Flags()
			t := wallet.IbcTransfer{Amount: amount, Receiver: args[0]}
			t.ChannelID, _ = f.GetString(flagChannel)
			t.PortID, _ = f.GetString(flagPort)
			t.Denom, _ = f.GetString(flagDenom)
			t.TimeoutTimestamp, _ = f.GetString(flagTimeout)
			return runTx(cmd, func(ctx context.Context, w *wallet.Wallet) (types.BroadcastResult, error) {
				return w.IbcTransferOut(ctx, t)
			})
		},
	}
	cmd.Flags().String(flagChannel, "", "source channel id")
	cmd.Flags().String(flagPort, "transfer", "source port id")
	cmd.Flags().String(flagDenom, "usat", "denomination to send")
	cmd.Flags().String(flagTimeout, "", "timeout timestamp in nanoseconds since epoch")
	_ = cmd.MarkFlagRequired(flagChannel)
	_ = cmd.MarkFlagRequired(flagTimeout)
	return cmd
}
