package verifiergrpc_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/blockberries/webclient"
	verifiergrpc "github.com/blockberries/webclient/grpc"
	"github.com/blockberries/webclient/session"
	webclienttest "github.com/blockberries/webclient/testing"
	"github.com/blockberries/webclient/transport"
	"github.com/blockberries/webclient/types"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// startServer starts a gRPC server on a random port and returns
// the listener address and a cleanup function.
func startServer(t *testing.T, gs *verifiergrpc.GRPCServer) (string, func()) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	s := grpc.NewServer()
	gs.Register(s)

	go func() {
		_ = s.Serve(lis)
	}()

	return lis.Addr().String(), func() {
		s.GracefulStop()
	}
}

func dial(t *testing.T, addr string) *verifiergrpc.Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := verifiergrpc.Dial(ctx, addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	return client
}

func TestGRPC_VerifyRoundTrip(t *testing.T) {
	addr, cleanup := startServer(t, verifiergrpc.NewGRPCServer(webclient.VerifierFunc(webclienttest.VerifyFakeProof)))
	defer cleanup()

	client := dial(t, addr)
	defer client.Close()

	want := []types.Entry{
		{Key: []byte{0x01, 0xaa}, Value: types.EncodeUint64(3)},
		{Key: []byte{0x02, 0xaa}, Value: types.EncodeUint64(900)},
	}
	proof, root := webclienttest.FakeProof(want...)

	got, err := client.Verify(context.Background(), proof, root)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if string(got[i].Key) != string(want[i].Key) || string(got[i].Value) != string(want[i].Value) {
			t.Errorf("entry %d: got %x=%x, want %x=%x", i, got[i].Key, got[i].Value, want[i].Key, want[i].Value)
		}
	}
}

func TestGRPC_RejectedProof(t *testing.T) {
	addr, cleanup := startServer(t, verifiergrpc.NewGRPCServer(webclient.VerifierFunc(webclienttest.VerifyFakeProof)))
	defer cleanup()

	client := dial(t, addr)
	defer client.Close()

	proof, _ := webclienttest.FakeProof()
	_, err := client.Verify(context.Background(), proof, types.Hash{0xff})
	if !errors.Is(err, verifiergrpc.ErrProofRejected) {
		t.Fatalf("expected ErrProofRejected, got %v", err)
	}
}

func TestGRPC_Unavailable(t *testing.T) {
	addr, cleanup := startServer(t, verifiergrpc.NewGRPCServer(webclient.VerifierFunc(webclienttest.VerifyFakeProof)))
	client := dial(t, addr)
	defer client.Close()
	cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	proof, root := webclienttest.FakeProof()
	_, err := client.Verify(ctx, proof, root)
	if err == nil {
		t.Fatal("expected error from stopped server")
	}
	if errors.Is(err, verifiergrpc.ErrProofRejected) {
		t.Fatalf("unreachable verifier reported as rejection: %v", err)
	}
}

// The remote verifier slots into the transport like any other.
func TestGRPC_TransportCompliance(t *testing.T) {
	addr, cleanup := startServer(t, verifiergrpc.NewGRPCServer(webclient.VerifierFunc(webclienttest.VerifyFakeProof)))
	defer cleanup()

	client := dial(t, addr)
	defer client.Close()

	gw := webclienttest.NewGateway(5, 6)
	defer gw.Close()
	addrA := webclienttest.TestAddress(7)
	gw.SetBalance(addrA, 77)

	tr := transport.New(webclient.StaticEndpoint(gw.URL()), client)
	sess := session.New()

	store, err := tr.QueryTyped(context.Background(), sess, types.BalanceQuery(addrA))
	if err != nil {
		t.Fatalf("QueryTyped: %v", err)
	}
	v, ok := store.Get(types.BalanceQuery(addrA).Key())
	if !ok {
		t.Fatal("balance record missing")
	}
	if n, _ := types.DecodeUint64(v); n != 77 {
		t.Fatalf("expected balance 77, got %d", n)
	}

	_, err = tr.QueryTyped(context.Background(), sess, types.NonceQuery(addrA))
	if _, ok := webclient.IsConsistency(err); !ok {
		t.Fatalf("expected consistency error, got %v", err)
	}
}
