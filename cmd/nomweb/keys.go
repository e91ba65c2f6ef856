package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blockberries/webclient/signer"

	"github.com/spf13/cobra"
)

const flagForce = "force"

// NewKeysCmd returns the keys command group.
func NewKeysCmd() *cobra.Command {
	keysCmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage the signing key",
	}
	keysCmd.AddCommand(NewKeysGenerateCmd(), NewKeysShowCmd())
	return keysCmd
}

// NewKeysGenerateCmd returns the keys generate command.
func NewKeysGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a signing key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := keyPath(cmd)
			force, _ := cmd.Flags().GetBool(flagForce)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("key file %s already exists", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			s := signer.Generate()
			if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(s.Hex()+"\n"), 0o600); err != nil {
				return err
			}
			addr, _ := s.Address(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), addr)
			return nil
		},
	}
	cmd.Flags().Bool(flagForce, false, "overwrite an existing key file")
	return cmd
}

// NewKeysShowCmd returns the keys show command.
func NewKeysShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the address of the signing key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := signer.FromFile(keyPath(cmd))
			if err != nil {
				return err
			}
			addr, _ := s.Address(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), addr)
			return nil
		},
	}
}
