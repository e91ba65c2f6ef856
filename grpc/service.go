package verifiergrpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
)

const serviceName = "github.com/blockberries/webclient.v1.ProofVerifier"

// ProofVerifierServer is the server-side interface of the verifier
// service.
type ProofVerifierServer interface {
	Verify(context.Context, *VerifyRequest) (*VerifyResponse, error)
}

// RegisterProofVerifierServer registers srv on a gRPC server.
func RegisterProofVerifierServer(s *grpc.Server, srv ProofVerifierServer) {
	s.RegisterService(&serviceDesc, srv)
}

func handlerVerify(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(VerifyRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProofVerifierServer).Verify(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod("Verify")}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProofVerifierServer).Verify(ctx, req.(*VerifyRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// fullMethod builds the full gRPC method path.
func fullMethod(method string) string {
	return fmt.Sprintf("/%s/%s", serviceName, method)
}

// serviceDesc is the manual gRPC service descriptor of the verifier.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ProofVerifierServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Verify", Handler: handlerVerify},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "github.com/blockberries/webclient/v1/verifier.cram",
}
