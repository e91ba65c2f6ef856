package transport_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/blockberries/webclient"
	"github.com/blockberries/webclient/session"
	webclienttest "github.com/blockberries/webclient/testing"
	"github.com/blockberries/webclient/transport"
	"github.com/blockberries/webclient/types"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestCompliance(t *testing.T) {
	webclienttest.RunComplianceSuite(t, func(endpoint string, v webclient.ProofVerifier) webclienttest.Querier {
		return transport.New(webclient.StaticEndpoint(endpoint), v, transport.WithLogger(zaptest.NewLogger(t)))
	})
}

func TestQueryURL(t *testing.T) {
	require.Equal(t, "https://rest.example/query/01ff",
		transport.QueryURL("https://rest.example", []byte{0x01, 0xff}, 0, false))
	require.Equal(t, "https://rest.example/query/01?height=100",
		transport.QueryURL("https://rest.example/", []byte{0x01}, 100, true))
	require.Equal(t, "https://rest.example/query/?height=0",
		transport.QueryURL("https://rest.example", nil, 0, true))
}

// Height 100, zero root, proof 0xAA accepted with an empty mapping; a
// second response at 101 breaks the session.
func TestQuery_PinnedScenario(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/query/01", r.URL.Path)
		height := uint32(100)
		if calls.Add(1) > 1 {
			require.Equal(t, "100", r.URL.Query().Get("height"))
			height = 101
		}
		env := types.ResponseEnvelope{Height: height, Proof: []byte{0xAA}}
		_, _ = w.Write([]byte(env.Base64()))
	}))
	defer srv.Close()

	verifier := &webclienttest.MockVerifier{
		VerifyFn: func(_ context.Context, proof []byte, root types.Hash) ([]types.Entry, error) {
			if len(proof) != 1 || proof[0] != 0xAA || !root.IsZero() {
				return nil, errors.New("unexpected proof")
			}
			return nil, nil
		},
	}
	c := transport.New(webclient.StaticEndpoint(srv.URL), verifier, transport.WithLogger(zaptest.NewLogger(t)))

	sess := session.New()
	store, err := c.Query(context.Background(), sess, []byte{0x01})
	require.NoError(t, err)
	require.Equal(t, 0, store.Len())
	require.Equal(t, uint32(100), store.Height())

	h, ok := sess.Height()
	require.True(t, ok)
	require.Equal(t, uint32(100), h)

	_, err = c.Query(context.Background(), sess, []byte{0x01})
	cerr, ok := webclient.IsConsistency(err)
	require.True(t, ok, "expected consistency error, got %v", err)
	require.Equal(t, uint32(100), cerr.Expected)
	require.Equal(t, uint32(101), cerr.Observed)

	// The mismatched response was never handed to the verifier.
	require.Equal(t, int64(1), verifier.Calls.Load())
}

func TestQuery_MissingEndpointFailsBeforeIO(t *testing.T) {
	verifier := &webclienttest.MockVerifier{}
	c := transport.New(webclient.StaticEndpoint(""), verifier)

	_, err := c.Query(context.Background(), session.New(), []byte{0x01})
	cerr, ok := webclient.IsConfig(err)
	require.True(t, ok, "expected config error, got %v", err)
	require.Equal(t, webclient.EndpointKey, cerr.Key)
	require.Zero(t, verifier.Calls.Load())

	_, err = c.Broadcast(context.Background(), []byte("tx"))
	_, ok = webclient.IsConfig(err)
	require.True(t, ok, "expected config error, got %v", err)
}

func TestQuery_ResolverErrorBecomesConfigError(t *testing.T) {
	resolver := resolverFunc(func(context.Context) (string, error) {
		return "", errors.New("storage unavailable")
	})
	c := transport.New(resolver, &webclienttest.MockVerifier{})
	_, err := c.Query(context.Background(), session.New(), []byte{0x01})
	_, ok := webclient.IsConfig(err)
	require.True(t, ok, "expected config error, got %v", err)
}

func TestQuery_NetworkFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := transport.New(webclient.StaticEndpoint(url), &webclienttest.MockVerifier{})
	_, err := c.Query(context.Background(), session.New(), []byte{0x01})
	te, ok := webclient.IsTransport(err)
	require.True(t, ok, "expected transport error, got %v", err)
	require.Zero(t, te.Status)
}

func TestQuery_BodyLimit(t *testing.T) {
	env := types.ResponseEnvelope{Height: 1, Proof: make([]byte, 1024)}
	srv := webclienttest.RawGateway(http.StatusOK, env.Base64())
	defer srv.Close()

	c := transport.New(webclient.StaticEndpoint(srv.URL), &webclienttest.MockVerifier{},
		transport.WithMaxBodyBytes(64))
	_, err := c.Query(context.Background(), session.New(), []byte{0x01})
	_, ok := webclient.IsTransport(err)
	require.True(t, ok, "expected transport error, got %v", err)
}

func TestQuery_DuplicateEntriesRejected(t *testing.T) {
	gw := webclienttest.NewGateway(5)
	defer gw.Close()
	dup := []types.Entry{{Key: []byte("k"), Value: []byte("1")}, {Key: []byte("k"), Value: []byte("2")}}
	c := transport.New(webclient.StaticEndpoint(gw.URL()), &webclienttest.MockVerifier{
		VerifyFn: func(context.Context, []byte, types.Hash) ([]types.Entry, error) { return dup, nil },
	})
	_, err := c.Query(context.Background(), session.New(), []byte{0x01})
	_, ok := webclient.IsProof(err)
	require.True(t, ok, "expected proof error, got %v", err)
}

func TestQueryTyped_ReadsAccountRecord(t *testing.T) {
	h := webclienttest.NewHarness(t, 12)
	h.Gateway.SetNonce(h.Address(), 41)

	q := types.NonceQuery(h.Address())
	store := h.Query(session.New(), q)
	v, ok := store.Get(q.Key())
	require.True(t, ok)
	n, err := types.DecodeUint64(v)
	require.NoError(t, err)
	require.Equal(t, uint64(41), n)
}

func TestBroadcast_PostsBase64(t *testing.T) {
	h := webclienttest.NewHarness(t)

	res, err := h.Transport.Broadcast(context.Background(), []byte(`{"msg":[]}`))
	require.NoError(t, err)
	require.Contains(t, res.String(), `"check_tx"`)

	txs := h.Gateway.Txs()
	require.Len(t, txs, 1)
	require.Equal(t, `{"msg":[]}`, string(txs[0]))
}

func TestBroadcast_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		code   uint32
	}{
		{"http_error", http.StatusBadGateway, "upstream down", 0},
		{"check_tx", http.StatusOK, `{"check_tx":{"code":5,"log":"insufficient funds"},"deliver_tx":{"code":0}}`, 5},
		{"deliver_tx", http.StatusOK, `{"check_tx":{"code":0},"deliver_tx":{"code":7,"log":"nonce"}}`, 7},
		{"jsonrpc_wrapped", http.StatusOK, `{"jsonrpc":"2.0","result":{"check_tx":{"code":3,"log":"bad sig"}}}`, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := webclienttest.RawGateway(tc.status, tc.body)
			defer srv.Close()

			c := transport.New(webclient.StaticEndpoint(srv.URL), &webclienttest.MockVerifier{})
			_, err := c.Broadcast(context.Background(), []byte("tx"))
			be, ok := webclient.IsBroadcast(err)
			require.True(t, ok, "expected broadcast error, got %v", err)
			require.Equal(t, tc.code, be.Code)
			require.Equal(t, tc.status, be.Status)
		})
	}
}

func TestBroadcast_OpaqueBodyReturnedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/txs", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.Equal(t, "AQID", string(body))
		_, _ = w.Write([]byte("accepted: 8F3A"))
	}))
	defer srv.Close()

	c := transport.New(webclient.StaticEndpoint(srv.URL), &webclienttest.MockVerifier{})
	res, err := c.Broadcast(context.Background(), []byte{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, "accepted: 8F3A", res.String())
}

type resolverFunc func(context.Context) (string, error)

func (f resolverFunc) Endpoint(ctx context.Context) (string, error) { return f(ctx) }
