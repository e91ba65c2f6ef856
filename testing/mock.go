// Package webclienttest provides test utilities for the verified REST
// client: configurable mocks of the external collaborators, an
// httptest REST gateway serving framed query responses at scripted
// heights, fake relayers, and a transport compliance suite.
package webclienttest

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/blockberries/webclient"
	"github.com/blockberries/webclient/types"

	"github.com/blockberries/cramberry/pkg/cramberry"
)

// Compile-time interface checks.
var (
	_ webclient.ProofVerifier = (*MockVerifier)(nil)
	_ webclient.Signer        = (*MockSigner)(nil)
)

// ErrFakeProofRoot is returned by VerifyFakeProof when the root does
// not match the proof.
var ErrFakeProofRoot = errors.New("proof does not match root hash")

// fakeProof is the test proof format: a cramberry-encoded entry list
// whose root hash is the SHA-256 of the encoding.
type fakeProof struct {
	Entries []types.Entry `cramberry:"1"`
}

// FakeProof encodes entries as a test proof and returns it with the
// root hash it verifies against.
func FakeProof(entries ...types.Entry) ([]byte, types.Hash) {
	proof, err := cramberry.Marshal(fakeProof{Entries: entries})
	if err != nil {
		panic(fmt.Sprintf("webclienttest: encode fake proof: %v", err))
	}
	return proof, sha256.Sum256(proof)
}

// VerifyFakeProof verifies a proof produced by FakeProof.
func VerifyFakeProof(_ context.Context, proof []byte, root types.Hash) ([]types.Entry, error) {
	if types.Hash(sha256.Sum256(proof)) != root {
		return nil, ErrFakeProofRoot
	}
	var p fakeProof
	if err := cramberry.Unmarshal(proof, &p); err != nil {
		return nil, fmt.Errorf("decode fake proof: %w", err)
	}
	return p.Entries, nil
}

// MockVerifier is a configurable ProofVerifier. With no VerifyFn it
// verifies proofs produced by FakeProof.
type MockVerifier struct {
	VerifyFn func(context.Context, []byte, types.Hash) ([]types.Entry, error)

	Calls atomic.Int64
}

// Verify counts the call and runs VerifyFn or VerifyFakeProof.
func (m *MockVerifier) Verify(ctx context.Context, proof []byte, root types.Hash) ([]types.Entry, error) {
	m.Calls.Add(1)
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, proof, root)
	}
	return VerifyFakeProof(ctx, proof, root)
}

// MockSigner is a configurable Signer. With no SignFn it returns a
// signature whose bytes are the SHA-256 of the sign bytes, and records
// every document it signed.
type MockSigner struct {
	Addr    types.Address
	PubKey  []byte
	SignFn  func(context.Context, []byte) (types.Signature, error)
	AddrErr error

	mu     sync.Mutex
	signed [][]byte

	SignCalls atomic.Int64
}

// Address returns Addr, or AddrErr when set.
func (m *MockSigner) Address(context.Context) (types.Address, error) {
	if m.AddrErr != nil {
		return types.Address{}, m.AddrErr
	}
	return m.Addr, nil
}

// Sign records signBytes and runs SignFn or the digest signature.
func (m *MockSigner) Sign(ctx context.Context, signBytes []byte) (types.Signature, error) {
	m.SignCalls.Add(1)
	m.mu.Lock()
	m.signed = append(m.signed, append([]byte(nil), signBytes...))
	m.mu.Unlock()

	if m.SignFn != nil {
		return m.SignFn(ctx, signBytes)
	}
	digest := sha256.Sum256(signBytes)
	return types.Signature{
		PubKey:    types.PubKey{Type: types.PubKeySecp256k1Type, Value: m.PubKey},
		Signature: digest[:],
	}, nil
}

// Signed returns copies of every sign document signed so far.
func (m *MockSigner) Signed() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.signed))
	copy(out, m.signed)
	return out
}

// TestAddress returns a deterministic address derived from seed.
func TestAddress(seed byte) types.Address {
	var a types.Address
	for i := range a {
		a[i] = seed + byte(i)
	}
	return a
}
