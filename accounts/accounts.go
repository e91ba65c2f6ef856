// Package accounts reads account records (nonce, balance) through the
// verified query transport.
package accounts

import (
	"context"
	"fmt"

	"github.com/blockberries/webclient/session"
	"github.com/blockberries/webclient/types"
)

// Querier is the read path accounts are fetched through.
type Querier interface {
	QueryTyped(ctx context.Context, sess *session.Session, q types.Query) (*types.VerifiedStore, error)
}

// Reader fetches account records.
type Reader struct {
	q Querier
}

// NewReader creates a Reader over q.
func NewReader(q Querier) *Reader {
	return &Reader{q: q}
}

// Nonce returns the current nonce of addr. An account with no record
// has nonce zero.
func (r *Reader) Nonce(ctx context.Context, sess *session.Session, addr types.Address) (uint64, error) {
	return r.read(ctx, sess, types.NonceQuery(addr))
}

// Balance returns the native balance of addr. An account with no
// record has a zero balance.
func (r *Reader) Balance(ctx context.Context, sess *session.Session, addr types.Address) (uint64, error) {
	return r.read(ctx, sess, types.BalanceQuery(addr))
}

func (r *Reader) read(ctx context.Context, sess *session.Session, q types.Query) (uint64, error) {
	store, err := r.q.QueryTyped(ctx, sess, q)
	if err != nil {
		return 0, err
	}
	v, ok := store.Get(q.Key())
	if !ok {
		return 0, nil
	}
	n, err := types.DecodeUint64(v)
	if err != nil {
		return 0, fmt.Errorf("%s of %s at height %d: %w", q.Kind, q.Address, store.Height(), err)
	}
	return n, nil
}
