// Package webclient defines the collaborator boundary of a light
// client that reads verified state from, and submits signed writes to,
// an untrusted node over plain HTTP.
//
// The client core consumes three collaborators it does not implement:
// a [ProofVerifier] turning proof bytes into a verified key/value view,
// a [Signer] producing signatures over canonical sign documents, and an
// [EndpointResolver] supplying the REST gateway base URL.
//
// The transport, submit and relay packages build the read path, the
// write path and the deposit-commitment announcement on top of these.
package webclient

import (
	"context"

	"github.com/blockberries/webclient/types"
)

// ProofVerifier authenticates proof bytes against a trusted root hash.
//
// On success it returns every key/value pair the proof authenticates.
// It must return an error if the proof does not verify against root;
// the caller never inspects partial results of a failed verification.
//
// Implementations MUST be safe for concurrent use.
type ProofVerifier interface {
	Verify(ctx context.Context, proof []byte, root types.Hash) ([]types.Entry, error)
}

// VerifierFunc adapts a plain function to ProofVerifier.
type VerifierFunc func(ctx context.Context, proof []byte, root types.Hash) ([]types.Entry, error)

// Verify calls f.
func (f VerifierFunc) Verify(ctx context.Context, proof []byte, root types.Hash) ([]types.Entry, error) {
	return f(ctx, proof, root)
}

// Signer holds the key material of the submitting account.
type Signer interface {
	// Address returns the account address the signer signs for.
	Address(ctx context.Context) (types.Address, error)

	// Sign returns a signature bound to signBytes, the canonical
	// serialization of a sign document.
	Sign(ctx context.Context, signBytes []byte) (types.Signature, error)
}

// EndpointResolver supplies the base URL of the REST gateway for the
// current session.
//
// A missing or unusable value is reported as a *ConfigError before any
// network call is attempted.
type EndpointResolver interface {
	Endpoint(ctx context.Context) (string, error)
}

// StaticEndpoint is an EndpointResolver returning a fixed URL.
type StaticEndpoint string

// Endpoint returns the URL, or a *ConfigError if it is empty.
func (e StaticEndpoint) Endpoint(context.Context) (string, error) {
	if e == "" {
		return "", NewConfigError(EndpointKey, ErrNoEndpoint)
	}
	return string(e), nil
}

// EndpointKey is the persisted configuration key of the REST gateway.
const EndpointKey = "nomic/rest_server"
