package webclient

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestConsistencyError(t *testing.T) {
	err := NewConsistencyError(100, 101)
	if err.Expected != 100 {
		t.Errorf("expected 100, got %d", err.Expected)
	}
	if err.Observed != 101 {
		t.Errorf("expected observed 101, got %d", err.Observed)
	}

	expected := "height mismatch: expected 100, got 101"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestIsConsistency(t *testing.T) {
	cerr := NewConsistencyError(10, 11)

	// Direct.
	c, ok := IsConsistency(cerr)
	if !ok {
		t.Fatal("expected IsConsistency to return true")
	}
	if c.Expected != 10 || c.Observed != 11 {
		t.Errorf("unexpected heights: %+v", c)
	}

	// Wrapped.
	wrapped := fmt.Errorf("query: %w", cerr)
	c2, ok2 := IsConsistency(wrapped)
	if !ok2 {
		t.Fatal("expected IsConsistency to unwrap wrapped error")
	}
	if c2.Observed != 11 {
		t.Errorf("expected observed 11, got %d", c2.Observed)
	}

	// Other kinds.
	if _, ok := IsConsistency(NewDecodeError(errors.New("short"))); ok {
		t.Fatal("expected IsConsistency to return false for a decode error")
	}

	// Nil.
	if _, ok := IsConsistency(nil); ok {
		t.Fatal("expected IsConsistency to return false for nil")
	}
}

func TestTransportError(t *testing.T) {
	withStatus := NewTransportError("https://rest.example/query/01", 502, nil)
	if got := withStatus.Error(); got != "transport: https://rest.example/query/01: HTTP 502" {
		t.Errorf("unexpected message %q", got)
	}

	cause := errors.New("connection refused")
	network := NewTransportError("https://rest.example/query/01", 0, cause)
	if !errors.Is(network, cause) {
		t.Fatal("expected transport error to unwrap to its cause")
	}
	if _, ok := IsTransport(fmt.Errorf("wrapped: %w", network)); !ok {
		t.Fatal("expected IsTransport to unwrap wrapped error")
	}
}

func TestRelayerError(t *testing.T) {
	err := NewRelayerError("https://relayer-2.example", 500, nil)
	r, ok := IsRelayer(fmt.Errorf("announce: %w", err))
	if !ok {
		t.Fatal("expected IsRelayer to return true")
	}
	if r.Status != 500 {
		t.Errorf("expected status 500, got %d", r.Status)
	}
	if r.Relayer != "https://relayer-2.example" {
		t.Errorf("unexpected relayer %q", r.Relayer)
	}
	expected := "relayer https://relayer-2.example: response returned with error code: 500"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestBroadcastError(t *testing.T) {
	rejected := NewBroadcastError(200, 4, "signature verification failed", nil)
	if got := rejected.Error(); got != "broadcast rejected: code 4: signature verification failed" {
		t.Errorf("unexpected message %q", got)
	}
	status := NewBroadcastError(503, 0, "unavailable", nil)
	if got := status.Error(); got != "broadcast: HTTP 503: unavailable" {
		t.Errorf("unexpected message %q", got)
	}
	if _, ok := IsBroadcast(status); !ok {
		t.Fatal("expected IsBroadcast to return true")
	}
	if _, ok := IsProof(status); ok {
		t.Fatal("expected IsProof to return false for a broadcast error")
	}
}

func TestConfigError(t *testing.T) {
	_, err := StaticEndpoint("").Endpoint(context.Background())
	c, ok := IsConfig(err)
	if !ok {
		t.Fatalf("expected config error, got %v", err)
	}
	if c.Key != EndpointKey {
		t.Errorf("expected key %q, got %q", EndpointKey, c.Key)
	}
	if !errors.Is(err, ErrNoEndpoint) {
		t.Fatal("expected config error to wrap ErrNoEndpoint")
	}

	url, err := StaticEndpoint("https://rest.example").Endpoint(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://rest.example" {
		t.Errorf("unexpected url %q", url)
	}
}
