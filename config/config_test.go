package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blockberries/webclient"
	"github.com/blockberries/webclient/config"
	"github.com/blockberries/webclient/types"

	"github.com/stretchr/testify/require"
)

type mapOpts map[string]any

func (m mapOpts) Get(key string) any { return m[key] }

func TestFromAppOpts_Defaults(t *testing.T) {
	cfg := config.FromAppOpts(mapOpts{config.FlagRestServer: " https://rest.example "})

	require.Equal(t, "https://rest.example", cfg.RestServer)
	require.Equal(t, types.DefaultChainID, cfg.ChainID)
	require.Equal(t, config.DefaultRequestTimeout, cfg.RequestTimeout)
	require.Empty(t, cfg.Relayers)
	require.False(t, cfg.SerializeSubmissions)
	require.NoError(t, cfg.Validate())
}

func TestFromAppOpts_Values(t *testing.T) {
	cfg := config.FromAppOpts(mapOpts{
		config.FlagRestServer:           "http://localhost:8443",
		config.FlagChainID:              "nomic-testnet-4d",
		config.FlagVerifierAddr:         "127.0.0.1:9090",
		config.FlagRelayers:             "https://r1.example/address, https://r2.example/address,",
		config.FlagRequestTimeout:       "5s",
		config.FlagSerializeSubmissions: "true",
	})

	require.Equal(t, "nomic-testnet-4d", cfg.ChainID)
	require.Equal(t, "127.0.0.1:9090", cfg.VerifierAddr)
	require.Equal(t, []string{"https://r1.example/address", "https://r2.example/address"}, cfg.Relayers)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
	require.True(t, cfg.SerializeSubmissions)
	require.NoError(t, cfg.Validate())
}

func TestFromAppOpts_RelayerList(t *testing.T) {
	cfg := config.FromAppOpts(mapOpts{
		config.FlagRelayers: []any{"https://r1.example", "https://r2.example"},
	})
	require.Equal(t, []string{"https://r1.example", "https://r2.example"}, cfg.Relayers)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		key  string
	}{
		{"missing endpoint", config.Config{}, config.FlagRestServer},
		{"relative endpoint", config.Config{RestServer: "/api"}, config.FlagRestServer},
		{"wrong scheme", config.Config{RestServer: "ftp://rest.example"}, config.FlagRestServer},
		{"bad relayer", config.Config{RestServer: "https://rest.example", Relayers: []string{"relayer"}}, config.FlagRelayers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			ce, ok := webclient.IsConfig(err)
			require.True(t, ok, "expected config error, got %v", err)
			require.Equal(t, tt.key, ce.Key)
		})
	}
}

func TestResolver(t *testing.T) {
	opts := mapOpts{}
	r := config.NewResolver(opts)

	_, err := r.Endpoint(context.Background())
	ce, ok := webclient.IsConfig(err)
	require.True(t, ok)
	require.Equal(t, webclient.EndpointKey, ce.Key)
	require.ErrorIs(t, err, webclient.ErrNoEndpoint)

	opts[config.FlagRestServer] = "https://rest.example/"
	ep, err := r.Endpoint(context.Background())
	require.NoError(t, err)
	require.Equal(t, "https://rest.example", ep)

	opts[config.FlagRestServer] = "rest.example"
	_, err = r.Endpoint(context.Background())
	_, ok = webclient.IsConfig(err)
	require.True(t, ok)
}

func TestFileStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	s, err := config.OpenFileStore(path)
	require.NoError(t, err)
	require.Nil(t, s.Get(config.FlagRestServer))

	s.Set(config.FlagRestServer, "https://rest.example")
	s.Set(config.FlagRelayers, []string{"https://r1.example"})
	require.NoError(t, s.Save())

	reopened, err := config.OpenFileStore(path)
	require.NoError(t, err)
	require.Equal(t, []string{config.FlagRelayers, config.FlagRestServer}, reopened.Keys())

	cfg := config.FromAppOpts(reopened)
	require.Equal(t, "https://rest.example", cfg.RestServer)
	require.Equal(t, []string{"https://r1.example"}, cfg.Relayers)

	reopened.Delete(config.FlagRelayers)
	require.Nil(t, reopened.Get(config.FlagRelayers))
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := config.OpenFileStore(path)
	require.Error(t, err)
}
