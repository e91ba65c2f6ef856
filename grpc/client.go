package verifiergrpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/blockberries/webclient"
	"github.com/blockberries/webclient/types"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Compile-time interface check.
var _ webclient.ProofVerifier = (*Client)(nil)

// ErrProofRejected is wrapped by errors for proofs the remote verifier
// refused, as opposed to failures reaching it.
var ErrProofRejected = errors.New("proof rejected by remote verifier")

// Client implements webclient.ProofVerifier against a remote verifier
// service using cramberry serialization.
type Client struct {
	cc *grpc.ClientConn
}

// Dial connects to a remote verifier.
func Dial(ctx context.Context, addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append(opts, grpc.WithDefaultCallOptions(
		grpc.ForceCodec(CramberryCodec{}),
	))
	cc, err := grpc.DialContext(ctx, addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("verifier client: dial %s: %w", addr, err)
	}
	return &Client{cc: cc}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.cc.Close()
}

// Verify sends the proof to the remote verifier.
func (c *Client) Verify(ctx context.Context, proof []byte, root types.Hash) ([]types.Entry, error) {
	req := &VerifyRequest{Proof: proof, Root: root}
	resp := new(VerifyResponse)
	if err := c.cc.Invoke(ctx, fullMethod("Verify"), req, resp); err != nil {
		if st, ok := status.FromError(err); ok && st.Code() == codes.InvalidArgument {
			return nil, fmt.Errorf("%w: %s", ErrProofRejected, st.Message())
		}
		return nil, fmt.Errorf("verifier client: %w", err)
	}
	return resp.Entries, nil
}
