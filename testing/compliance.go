package webclienttest

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"testing"

	"github.com/blockberries/webclient"
	"github.com/blockberries/webclient/session"
	"github.com/blockberries/webclient/types"
)

// Querier is the read path under test.
type Querier interface {
	Query(ctx context.Context, sess *session.Session, query []byte) (*types.VerifiedStore, error)
}

// QuerierFactory builds a Querier talking to endpoint and verifying
// proofs with verifier.
type QuerierFactory func(endpoint string, verifier webclient.ProofVerifier) Querier

// RunComplianceSuite runs the standard height-pinning and framing
// checks against a read path implementation.
func RunComplianceSuite(t *testing.T, factory QuerierFactory) {
	t.Helper()
	ctx := context.Background()

	t.Run("same_height_succeeds", func(t *testing.T) {
		gw := NewGateway(7, 7, 7)
		defer gw.Close()
		q := factory(gw.URL(), &MockVerifier{})

		sess := session.New()
		for i := 0; i < 3; i++ {
			store, err := q.Query(ctx, sess, []byte{0x01})
			if err != nil {
				t.Fatalf("query %d: %v", i, err)
			}
			if store.Height() != 7 {
				t.Errorf("query %d: expected height 7, got %d", i, store.Height())
			}
		}
	})

	t.Run("height_mismatch_fails", func(t *testing.T) {
		gw := NewGateway(100, 101)
		defer gw.Close()
		q := factory(gw.URL(), &MockVerifier{})

		sess := session.New()
		if _, err := q.Query(ctx, sess, []byte{0x01}); err != nil {
			t.Fatalf("first query: %v", err)
		}
		_, err := q.Query(ctx, sess, []byte{0x01})
		c, ok := webclient.IsConsistency(err)
		if !ok {
			t.Fatalf("expected consistency error, got %v", err)
		}
		if c.Expected != 100 || c.Observed != 101 {
			t.Errorf("expected (100, 101), got (%d, %d)", c.Expected, c.Observed)
		}
	})

	t.Run("pinned_height_forwarded", func(t *testing.T) {
		gw := NewGateway(42)
		defer gw.Close()
		q := factory(gw.URL(), &MockVerifier{})

		sess := session.New()
		for i := 0; i < 2; i++ {
			if _, err := q.Query(ctx, sess, []byte{0xAB}); err != nil {
				t.Fatalf("query %d: %v", i, err)
			}
		}
		reqs := gw.Queries()
		if len(reqs) != 2 {
			t.Fatalf("expected 2 requests, got %d", len(reqs))
		}
		if reqs[0].Height != nil {
			t.Errorf("first request should not carry a height, got %d", *reqs[0].Height)
		}
		if reqs[1].Height == nil || *reqs[1].Height != 42 {
			t.Errorf("second request should carry height 42, got %v", reqs[1].Height)
		}
		if !bytes.Equal(reqs[0].Query, []byte{0xAB}) {
			t.Errorf("query bytes not forwarded: %x", reqs[0].Query)
		}
	})

	t.Run("short_envelope_is_decode_error", func(t *testing.T) {
		for _, n := range []int{0, 1, 4, 35} {
			body := base64.StdEncoding.EncodeToString(make([]byte, n))
			srv := RawGateway(http.StatusOK, body)
			q := factory(srv.URL, &MockVerifier{})
			_, err := q.Query(ctx, session.New(), []byte{0x01})
			srv.Close()
			if _, ok := webclient.IsDecode(err); !ok {
				t.Errorf("%d-byte envelope: expected decode error, got %v", n, err)
			}
		}
	})

	t.Run("invalid_base64_is_decode_error", func(t *testing.T) {
		srv := RawGateway(http.StatusOK, "not base64!")
		defer srv.Close()
		q := factory(srv.URL, &MockVerifier{})
		if _, ok := webclient.IsDecode(mustFail(q.Query(ctx, session.New(), []byte{0x01}))); !ok {
			t.Fatal("expected decode error")
		}
	})

	t.Run("non_2xx_is_transport_error", func(t *testing.T) {
		srv := RawGateway(http.StatusInternalServerError, "boom")
		defer srv.Close()
		q := factory(srv.URL, &MockVerifier{})
		_, err := q.Query(ctx, session.New(), []byte{0x01})
		te, ok := webclient.IsTransport(err)
		if !ok {
			t.Fatalf("expected transport error, got %v", err)
		}
		if te.Status != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", te.Status)
		}
	})

	t.Run("proof_rejection_is_proof_error", func(t *testing.T) {
		gw := NewGateway(3)
		defer gw.Close()
		cause := errors.New("bad proof")
		q := factory(gw.URL(), &MockVerifier{
			VerifyFn: func(context.Context, []byte, types.Hash) ([]types.Entry, error) {
				return nil, cause
			},
		})
		_, err := q.Query(ctx, session.New(), []byte{0x01})
		pe, ok := webclient.IsProof(err)
		if !ok {
			t.Fatalf("expected proof error, got %v", err)
		}
		if !errors.Is(pe, cause) {
			t.Errorf("proof error should wrap the verifier's error")
		}
	})

	t.Run("entries_passed_through", func(t *testing.T) {
		want := []types.Entry{
			{Key: []byte("a"), Value: []byte("1")},
			{Key: []byte("b"), Value: []byte("2")},
			{Key: []byte("c"), Value: nil},
		}
		proof, root := FakeProof(want...)
		env := types.ResponseEnvelope{Height: 9, RootHash: root, Proof: proof}
		srv := RawGateway(http.StatusOK, env.Base64())
		defer srv.Close()

		q := factory(srv.URL, &MockVerifier{})
		store, err := q.Query(ctx, session.New(), []byte{0x01})
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if store.Len() != len(want) {
			t.Fatalf("expected %d entries, got %d", len(want), store.Len())
		}
		for _, e := range want {
			v, ok := store.Get(e.Key)
			if !ok || !bytes.Equal(v, e.Value) {
				t.Errorf("key %q: expected %q, got %q (%v)", e.Key, e.Value, v, ok)
			}
		}
		if store.Root() != root {
			t.Errorf("root not preserved")
		}
	})
}

func mustFail(_ *types.VerifiedStore, err error) error { return err }
