package verifiergrpc

import (
	"context"
	"errors"
	"net"

	"github.com/blockberries/webclient"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Compile-time interface check.
var _ ProofVerifierServer = (*GRPCServer)(nil)

// GRPCServer exposes a webclient.ProofVerifier as a gRPC service.
type GRPCServer struct {
	verifier webclient.ProofVerifier
	logger   *zap.Logger
}

// ServerOption configures a GRPCServer.
type ServerOption func(*GRPCServer)

// WithServerLogger sets the server logger.
func WithServerLogger(l *zap.Logger) ServerOption {
	return func(s *GRPCServer) { s.logger = l }
}

// NewGRPCServer creates a gRPC server wrapping v.
func NewGRPCServer(v webclient.ProofVerifier, opts ...ServerOption) *GRPCServer {
	s := &GRPCServer{verifier: v, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds the verifier service to a gRPC server.
func (s *GRPCServer) Register(gs *grpc.Server) {
	RegisterProofVerifierServer(gs, s)
}

// Serve starts a gRPC server on the given listener.
func (s *GRPCServer) Serve(lis net.Listener, opts ...grpc.ServerOption) error {
	gs := grpc.NewServer(opts...)
	s.Register(gs)
	return gs.Serve(lis)
}

// Verify runs the wrapped verifier. A rejected proof is reported as
// InvalidArgument; cancellation keeps its own code.
func (s *GRPCServer) Verify(ctx context.Context, req *VerifyRequest) (*VerifyResponse, error) {
	entries, err := s.verifier.Verify(ctx, req.Proof, req.Root)
	if err != nil {
		s.logger.Debug("proof rejected",
			zap.Stringer("root", req.Root),
			zap.Int("proof_bytes", len(req.Proof)),
			zap.Error(err),
		)
		switch {
		case errors.Is(err, context.Canceled):
			return nil, status.Error(codes.Canceled, err.Error())
		case errors.Is(err, context.DeadlineExceeded):
			return nil, status.Error(codes.DeadlineExceeded, err.Error())
		default:
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
	}
	return &VerifyResponse{Entries: entries}, nil
}
