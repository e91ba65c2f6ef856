package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/blockberries/webclient"
	"github.com/blockberries/webclient/config"
	verifiergrpc "github.com/blockberries/webclient/grpc"
	"github.com/blockberries/webclient/relay"
	"github.com/blockberries/webclient/signer"
	"github.com/blockberries/webclient/submit"
	"github.com/blockberries/webclient/transport"
	"github.com/blockberries/webclient/types"
	"github.com/blockberries/webclient/wallet"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	flagHome    = "home"
	flagKeyFile = "key-file"
	flagDebug   = "debug"

	configFileName = "config.json"
	keyFileName    = "key"
)

// NewRootCmd returns the nomweb root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "nomweb",
		Short:        "Verified light client for the nomic REST gateway",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String(flagHome, defaultHome(), "directory holding the client config and key")
	rootCmd.PersistentFlags().String(flagKeyFile, "", "hex encoded secp256k1 key file (default <home>/key)")
	rootCmd.PersistentFlags().Bool(flagDebug, false, "enable debug logging")

	rootCmd.AddCommand(
		NewConfigCmd(),
		NewKeysCmd(),
		NewNonceCmd(),
		NewBalanceCmd(),
		NewTxCmd(),
		NewDepositCmd(),
	)
	return rootCmd
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nomweb"
	}
	return filepath.Join(home, ".nomweb")
}

func homeDir(cmd *cobra.Command) string {
	home, _ := cmd.Flags().GetString(flagHome)
	return home
}

func openStore(cmd *cobra.Command) (*config.FileStore, error) {
	return config.OpenFileStore(filepath.Join(homeDir(cmd), configFileName))
}

func keyPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString(flagKeyFile); p != "" {
		return p
	}
	return filepath.Join(homeDir(cmd), keyFileName)
}

func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	if debug, _ := cmd.Flags().GetBool(flagDebug); debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

var (
	errNoKey      = errors.New("no signing key loaded")
	errNoVerifier = errors.New("no proof verifier configured")
)

// clientContext carries the components a command runs with.
type clientContext struct {
	cfg      config.Config
	logger   *zap.Logger
	verifier *verifiergrpc.Client
	wallet   *wallet.Wallet
}

func (c *clientContext) Close() {
	if c.verifier != nil {
		_ = c.verifier.Close()
	}
	_ = c.logger.Sync()
}

// loadClient wires the wallet from the persisted config. With
// needSigner false the wallet runs read only.
func loadClient(cmd *cobra.Command, needSigner bool) (*clientContext, error) {
	store, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	cfg := config.FromAppOpts(store)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}

	var s webclient.Signer = readOnlySigner{}
	if needSigner {
		ks, err := signer.FromFile(keyPath(cmd))
		if err != nil {
			return nil, err
		}
		s = ks
	}

	c := &clientContext{cfg: cfg, logger: logger}
	var verifier webclient.ProofVerifier = missingVerifier{}
	if cfg.VerifierAddr != "" {
		remote, err := verifiergrpc.Dial(cmd.Context(), cfg.VerifierAddr,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		)
		if err != nil {
			return nil, err
		}
		c.verifier, verifier = remote, remote
	}

	httpc := &http.Client{Timeout: cfg.RequestTimeout}
	tr := transport.New(config.NewResolver(store), verifier,
		transport.WithHTTPClient(httpc),
		transport.WithLogger(logger.Named("transport")),
	)

	submitOpts := []submit.Option{submit.WithChainID(cfg.ChainID)}
	if cfg.SerializeSubmissions {
		submitOpts = append(submitOpts, submit.WithSerializedSubmissions())
	}
	c.wallet = wallet.New(tr, s,
		wallet.WithLogger(logger),
		wallet.WithSubmitOptions(submitOpts...),
		wallet.WithBroadcaster(relay.NewBroadcaster(
			relay.WithHTTPClient(httpc),
			relay.WithLogger(logger.Named("relay")),
		)),
	)

	return c, nil
}

// missingVerifier rejects every proof when no verifier is configured.
// Commands that never query, like deposit announcements, still run.
type missingVerifier struct{}

func (missingVerifier) Verify(context.Context, []byte, types.Hash) ([]types.Entry, error) {
	return nil, webclient.NewConfigError(config.FlagVerifierAddr, errNoVerifier)
}

// readOnlySigner backs commands that never sign.
type readOnlySigner struct{}

func (readOnlySigner) Address(context.Context) (types.Address, error) {
	return types.Address{}, errNoKey
}

func (readOnlySigner) Sign(context.Context, []byte) (types.Signature, error) {
	return types.Signature{}, errNoKey
}
