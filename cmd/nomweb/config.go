package main

import (
	"fmt"
	"slices"

	"github.com/blockberries/webclient"
	"github.com/blockberries/webclient/config"

	"github.com/spf13/cobra"
)

// NewConfigCmd returns the config command group.
func NewConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write persisted client settings",
	}
	configCmd.AddCommand(NewConfigSetCmd(), NewConfigGetCmd())
	return configCmd
}

// NewConfigSetCmd returns the config set command.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Persist a setting",
		Args:  cobra.ExactArgs(2),
		Example: `
$ nomweb config set nomic/rest_server https://app.nomic.io:8443
$ nomweb config set nomic/relayers https://relayer.nomic.mappum.io:8443/address
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if !slices.Contains(config.Keys, key) {
				return webclient.NewConfigError(key, fmt.Errorf("unknown key, expected one of %v", config.Keys))
			}
			if key == config.FlagRestServer {
				if err := config.ValidateEndpoint(value); err != nil {
					return webclient.NewConfigError(key, err)
				}
			}

			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			store.Set(key, value)
			if err := store.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
			return nil
		},
	}
}

// NewConfigGetCmd returns the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Print one setting, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			keys := store.Keys()
			if len(args) == 1 {
				if store.Get(args[0]) == nil {
					return webclient.NewConfigError(args[0], fmt.Errorf("not set"))
				}
				keys = args
			}
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", k, store.Get(k))
			}
			return nil
		},
	}
}
