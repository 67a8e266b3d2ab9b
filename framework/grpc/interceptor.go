// Package grpcbearer adapts the bearer gate to gRPC servers. The credential
// is read from the "authorization" metadata key, which must appear once.
package grpcbearer

import (
	"context"
	"net/http"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/bearergate/bearergate/core"
)

// MetadataKey is the metadata key holding the bearer credential.
const MetadataKey = "authorization"

// Interceptor authenticates gRPC calls against a core.Core.
type Interceptor struct {
	gate             *core.Core
	exclusionChecker func(fullMethod string) bool
	logger           core.Logger
}

// New creates a new Interceptor with the given options.
//
// Example:
//
//	interceptor := grpcbearer.New(gate)
//	server := grpc.NewServer(
//	    grpc.UnaryInterceptor(interceptor.UnaryServerInterceptor()),
//	    grpc.StreamInterceptor(interceptor.StreamServerInterceptor()),
//	)
func New(gate *core.Core, opts ...Option) *Interceptor {
	i := &Interceptor{gate: gate}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// authenticate returns ctx carrying the validated claims, or a status error.
func (i *Interceptor) authenticate(ctx context.Context, method string) (context.Context, error) {
	if i.exclusionChecker != nil && i.exclusionChecker(method) {
		return ctx, nil
	}

	md, _ := metadata.FromIncomingContext(ctx)
	decision := i.gate.Evaluate(ctx, md.Get(MetadataKey))
	if !decision.Allowed() {
		if i.logger != nil {
			i.logger.Warn("JWT validation failed", "code", decision.Code(), "method", method)
		}
		return nil, status.Error(statusCode(decision), decision.Message())
	}

	return core.SetClaims(ctx, decision.Claims), nil
}

func statusCode(decision core.Decision) codes.Code {
	if decision.StatusCode() == http.StatusUnauthorized {
		return codes.Unauthenticated
	}
	return codes.Internal
}

// UnaryServerInterceptor returns a gRPC unary server interceptor for JWT authentication.
func (i *Interceptor) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		authCtx, err := i.authenticate(ctx, info.FullMethod)
		if err != nil {
			return nil, err
		}
		return handler(authCtx, req)
	}
}

// StreamServerInterceptor returns a gRPC stream server interceptor for JWT authentication.
func (i *Interceptor) StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		authCtx, err := i.authenticate(ss.Context(), info.FullMethod)
		if err != nil {
			return err
		}
		return handler(srv, &wrappedServerStream{ServerStream: ss, ctx: authCtx})
	}
}

// wrappedServerStream wraps a grpc.ServerStream to override the context.
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

// Context returns the wrapped context.
func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}

// GetClaims retrieves the validated claims from a handler's context.
func GetClaims[T any](ctx context.Context) (T, error) {
	return core.GetClaims[T](ctx)
}
