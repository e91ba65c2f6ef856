// Package config holds the client's persisted settings.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/blockberries/webclient"
	"github.com/blockberries/webclient/types"

	servertypes "github.com/cosmos/cosmos-sdk/server/types"
	"github.com/spf13/cast"
)

const (
	FlagRestServer           = webclient.EndpointKey
	FlagChainID              = "nomic/chain_id"
	FlagVerifierAddr         = "nomic/verifier_addr"
	FlagRelayers             = "nomic/relayers"
	FlagRequestTimeout       = "nomic/request_timeout"
	FlagSerializeSubmissions = "nomic/serialize_submissions"

	DefaultRequestTimeout = 30 * time.Second
)

// Keys lists every recognized setting.
var Keys = []string{
	FlagRestServer,
	FlagChainID,
	FlagVerifierAddr,
	FlagRelayers,
	FlagRequestTimeout,
	FlagSerializeSubmissions,
}

// Config is the resolved client configuration.
type Config struct {
	// Base URL of the REST gateway
	RestServer string `mapstructure:"rest_server"`

	// Chain id written into sign documents
	ChainID string `mapstructure:"chain_id"`

	// host:port of a remote proof verifier
	VerifierAddr string `mapstructure:"verifier_addr"`

	// Deposit relayers announced to, in order
	Relayers []string `mapstructure:"relayers"`

	// Per-request HTTP timeout
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// Serialize submissions per account
	SerializeSubmissions bool `mapstructure:"serialize_submissions"`
}

// FromAppOpts reads the configuration from appOpts, filling defaults for
// unset optional keys.
func FromAppOpts(appOpts servertypes.AppOptions) Config {
	cfg := Config{
		RestServer:           strings.TrimSpace(cast.ToString(appOpts.Get(FlagRestServer))),
		ChainID:              cast.ToString(appOpts.Get(FlagChainID)),
		VerifierAddr:         cast.ToString(appOpts.Get(FlagVerifierAddr)),
		Relayers:             relayerList(appOpts.Get(FlagRelayers)),
		RequestTimeout:       cast.ToDuration(appOpts.Get(FlagRequestTimeout)),
		SerializeSubmissions: cast.ToBool(appOpts.Get(FlagSerializeSubmissions)),
	}
	if cfg.ChainID == "" {
		cfg.ChainID = types.DefaultChainID
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	return cfg
}

// Validate checks the settings every operation depends on.
func (c Config) Validate() error {
	if err := ValidateEndpoint(c.RestServer); err != nil {
		return webclient.NewConfigError(FlagRestServer, err)
	}
	for _, r := range c.Relayers {
		if err := ValidateEndpoint(r); err != nil {
			return webclient.NewConfigError(FlagRelayers, err)
		}
	}
	return nil
}

// ValidateEndpoint reports whether s is an absolute http(s) URL.
func ValidateEndpoint(s string) error {
	if s == "" {
		return webclient.ErrNoEndpoint
	}
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q is not an http(s) URL", s)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", s)
	}
	return nil
}

// relayerList accepts a list or a comma separated string.
func relayerList(v any) []string {
	var raw []string
	if s, ok := v.(string); ok {
		raw = strings.Split(s, ",")
	} else {
		raw = cast.ToStringSlice(v)
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
