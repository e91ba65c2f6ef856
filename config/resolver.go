package config

import (
	"context"
	"strings"

	"github.com/blockberries/webclient"

	servertypes "github.com/cosmos/cosmos-sdk/server/types"
	"github.com/spf13/cast"
)

var _ webclient.EndpointResolver = (*Resolver)(nil)

// Resolver reads the REST endpoint from a settings store on every call,
// so a changed setting applies to the next operation.
type Resolver struct {
	opts servertypes.AppOptions
}

// NewResolver creates a Resolver over opts.
func NewResolver(opts servertypes.AppOptions) *Resolver {
	return &Resolver{opts: opts}
}

// Endpoint returns the configured REST endpoint without a trailing
// slash. A missing or malformed value is a *webclient.ConfigError.
func (r *Resolver) Endpoint(context.Context) (string, error) {
	s := strings.TrimSpace(cast.ToString(r.opts.Get(FlagRestServer)))
	if err := ValidateEndpoint(s); err != nil {
		return "", webclient.NewConfigError(FlagRestServer, err)
	}
	return strings.TrimRight(s, "/"), nil
}
