package webclienttest

import (
	"context"
	"testing"

	"github.com/blockberries/webclient"
	"github.com/blockberries/webclient/session"
	"github.com/blockberries/webclient/transport"
	"github.com/blockberries/webclient/types"

	"go.uber.org/zap/zaptest"
)

// Harness wires a Gateway, a MockVerifier and a MockSigner to a
// transport so read and write paths can be exercised end to end.
type Harness struct {
	t *testing.T

	Gateway   *Gateway
	Verifier  *MockVerifier
	Signer    *MockSigner
	Transport *transport.Client
}

// NewHarness starts a gateway serving at heights. The gateway is
// closed when the test ends.
func NewHarness(t *testing.T, heights ...uint32) *Harness {
	t.Helper()
	gw := NewGateway(heights...)
	t.Cleanup(gw.Close)

	v := &MockVerifier{}
	return &Harness{
		t:        t,
		Gateway:  gw,
		Verifier: v,
		Signer:   &MockSigner{Addr: TestAddress(1), PubKey: make([]byte, 33)},
		Transport: transport.New(
			webclient.StaticEndpoint(gw.URL()),
			v,
			transport.WithLogger(zaptest.NewLogger(t)),
		),
	}
}

// Query performs a typed query in sess and fails the test on error.
func (h *Harness) Query(sess *session.Session, q types.Query) *types.VerifiedStore {
	h.t.Helper()
	store, err := h.Transport.QueryTyped(context.Background(), sess, q)
	if err != nil {
		h.t.Fatalf("Query (%s) failed: %v", q.Kind, err)
	}
	return store
}

// Address returns the signer's address.
func (h *Harness) Address() types.Address {
	return h.Signer.Addr
}
