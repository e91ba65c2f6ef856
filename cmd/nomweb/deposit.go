package main

import (
	"fmt"
	"strconv"

	"github.com/blockberries/webclient/types"

	"github.com/spf13/cobra"
)

const flagRelayers = "relayers"

// NewDepositCmd returns the deposit command group.
func NewDepositCmd() *cobra.Command {
	depositCmd := &cobra.Command{
		Use:   "deposit",
		Short: "Bitcoin deposit helpers",
	}
	depositCmd.AddCommand(NewDepositAnnounceCmd())
	return depositCmd
}

// NewDepositAnnounceCmd returns the deposit announce command.
func NewDepositAnnounceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "announce [dest-addr] [sigset-index] [deposit-addr]",
		Short: "Tell relayers which account a deposit address credits",
		Long: `Announce a deposit commitment to every configured relayer, in order.
The first relayer answering with a status other than 200 aborts the
announcement; relayers already contacted keep the commitment.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, err := types.ParseAddress(args[0])
			if err != nil {
				return err
			}
			idx, err := strconv.ParseUint(args[1], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid sigset index %q: %w", args[1], err)
			}

			c, err := loadClient(cmd, false)
			if err != nil {
				return err
			}
			defer c.Close()

			relayers := c.cfg.Relayers
			if override, _ := cmd.Flags().GetStringSlice(flagRelayers); len(override) > 0 {
				relayers = override
			}
			if err := c.wallet.BroadcastDepositAddress(cmd.Context(), dest, uint32(idx), relayers, args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "announced to %d relayers\n", len(relayers))
			return nil
		},
	}
	cmd.Flags().StringSlice(flagRelayers, nil, "relayer URLs (default: nomic/relayers)")
	return cmd
}
