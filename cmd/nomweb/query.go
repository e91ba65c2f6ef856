package main

import (
	"context"
	"fmt"

	"github.com/blockberries/webclient/types"
	"github.com/blockberries/webclient/wallet"

	"github.com/spf13/cobra"
)

// NewNonceCmd returns the nonce command.
func NewNonceCmd() *cobra.Command {
	return newAccountQueryCmd("nonce", "Print the verified account nonce", (*wallet.Wallet).Nonce)
}

// NewBalanceCmd returns the balance command.
func NewBalanceCmd() *cobra.Command {
	return newAccountQueryCmd("balance", "Print the verified balance in unom", (*wallet.Wallet).Balance)
}

func newAccountQueryCmd(use, short string, read func(*wallet.Wallet, context.Context, types.Address) (uint64, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [address]",
		Short: short + " (default: the signing key's account)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadClient(cmd, len(args) == 0)
			if err != nil {
				return err
			}
			defer c.Close()

			var addr types.Address
			if len(args) == 1 {
				if addr, err = types.ParseAddress(args[0]); err != nil {
					return err
				}
			} else if addr, err = c.wallet.Address(cmd.Context()); err != nil {
				return err
			}

			n, err := read(c.wallet, cmd.Context(), addr)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}
