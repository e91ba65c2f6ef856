package accounts_test

import (
	"context"
	"testing"

	"github.com/blockberries/webclient"
	"github.com/blockberries/webclient/accounts"
	"github.com/blockberries/webclient/session"
	webclienttest "github.com/blockberries/webclient/testing"
	"github.com/blockberries/webclient/types"

	"github.com/stretchr/testify/require"
)

func TestReader_NonceAndBalance(t *testing.T) {
	h := webclienttest.NewHarness(t, 50)
	h.Gateway.SetNonce(h.Address(), 9)
	h.Gateway.SetBalance(h.Address(), 1_000_000)

	r := accounts.NewReader(h.Transport)
	sess := session.New()

	nonce, err := r.Nonce(context.Background(), sess, h.Address())
	require.NoError(t, err)
	require.Equal(t, uint64(9), nonce)

	balance, err := r.Balance(context.Background(), sess, h.Address())
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), balance)

	// Both reads share the session's snapshot.
	qs := h.Gateway.Queries()
	require.Len(t, qs, 2)
	require.NotNil(t, qs[1].Height)
	require.Equal(t, uint32(50), *qs[1].Height)
}

func TestReader_MissingRecordIsZero(t *testing.T) {
	h := webclienttest.NewHarness(t)
	r := accounts.NewReader(h.Transport)

	nonce, err := r.Nonce(context.Background(), session.New(), webclienttest.TestAddress(99))
	require.NoError(t, err)
	require.Zero(t, nonce)
}

func TestReader_SnapshotShiftFails(t *testing.T) {
	h := webclienttest.NewHarness(t, 10, 11)
	r := accounts.NewReader(h.Transport)
	sess := session.New()

	_, err := r.Balance(context.Background(), sess, h.Address())
	require.NoError(t, err)

	_, err = r.Nonce(context.Background(), sess, h.Address())
	c, ok := webclient.IsConsistency(err)
	require.True(t, ok, "expected consistency error, got %v", err)
	require.Equal(t, uint32(10), c.Expected)
	require.Equal(t, uint32(11), c.Observed)
}

func TestReader_MalformedValue(t *testing.T) {
	h := webclienttest.NewHarness(t)
	addr := h.Address()
	key := types.NonceQuery(addr).Key()
	h.Verifier.VerifyFn = func(context.Context, []byte, types.Hash) ([]types.Entry, error) {
		return []types.Entry{{Key: key, Value: []byte{1, 2, 3}}}, nil
	}

	_, err := accounts.NewReader(h.Transport).Nonce(context.Background(), session.New(), addr)
	require.Error(t, err)
}
