// Package local provides an in-process proof verifier.
//
// For applications that link the Merkle verification routine into the
// same binary, this adapter wraps a plain verify function with context
// handling, optional serialization for routines that are not safe for
// concurrent use, and panic isolation.
package local

import (
	"context"
	"fmt"
	"sync"

	"github.com/blockberries/webclient"
	"github.com/blockberries/webclient/types"
)

// Compile-time interface check.
var _ webclient.ProofVerifier = (*Verifier)(nil)

// VerifyFunc checks a proof against a root hash and returns the proven
// entries.
type VerifyFunc func(proof []byte, root types.Hash) ([]types.Entry, error)

// Verifier adapts a VerifyFunc to webclient.ProofVerifier.
type Verifier struct {
	fn VerifyFunc

	serial bool
	mu     sync.Mutex
}

// Option configures a Verifier.
type Option func(*Verifier)

// Serialized runs at most one verification at a time.
func Serialized() Option {
	return func(v *Verifier) { v.serial = true }
}

// NewVerifier creates an in-process verifier around fn.
func NewVerifier(fn VerifyFunc, opts ...Option) *Verifier {
	v := &Verifier{fn: fn}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify runs the wrapped function. A canceled context is reported
// before the function runs; a panic inside it is returned as an error.
// The returned entries never alias the function's result.
func (v *Verifier) Verify(ctx context.Context, proof []byte, root types.Hash) (entries []types.Entry, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if v.serial {
		v.mu.Lock()
		defer v.mu.Unlock()
	}
	defer func() {
		if r := recover(); r != nil {
			entries, err = nil, fmt.Errorf("verifier panic: %v", r)
		}
	}()

	out, err := v.fn(proof, root)
	if err != nil {
		return nil, err
	}
	entries = make([]types.Entry, len(out))
	for i, e := range out {
		entries[i] = types.Entry{
			Key:   append([]byte(nil), e.Key...),
			Value: append([]byte(nil), e.Value...),
		}
	}
	return entries, nil
}
