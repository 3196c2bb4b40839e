package interceptor

import (
	"context"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"nexuscore-backend/internal/logger"
	"nexuscore-backend/internal/session"
)

// SessionResolver maps a bearer token onto a live session.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*session.Controller, error)
}

// publicPrefixes never require a session.
var publicPrefixes = []string{
	"/grpc.health.v1.Health/",
	"/grpc.reflection.",
}

type SessionInterceptor struct {
	sessions SessionResolver
}

func NewSessionInterceptor(sessions SessionResolver) *SessionInterceptor {
	return &SessionInterceptor{sessions: sessions}
}

// Unary returns a server interceptor that logs every unary RPC and resolves
// the caller's session for non-public methods.
func (i *SessionInterceptor) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := i.intercept(ctx, req, info, handler)
		logger.Debug("gRPC call",
			"method", info.FullMethod, "code", status.Code(err).String(), "duration", time.Since(start))
		return resp, err
	}
}

func (i *SessionInterceptor) intercept(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if isPublic(info.FullMethod) {
		return handler(ctx, req)
	}

	token, err := extractToken(ctx)
	if err != nil {
		return nil, err
	}
	ctrl, err := i.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, status.Errorf(codes.Unauthenticated, "invalid session: %v", err)
	}

	// Copy, then Set, so a client-sent "session-id" header is overwritten.
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.New(nil)
	} else {
		md = md.Copy()
	}
	md.Set("session-id", ctrl.ID())
	return handler(metadata.NewIncomingContext(ctx, md), req)
}

func isPublic(method string) bool {
	for _, p := range publicPrefixes {
		if strings.HasPrefix(method, p) {
			return true
		}
	}
	return false
}

func extractToken(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "metadata is not provided")
	}

	authHeader := md["authorization"]
	if len(authHeader) == 0 {
		return "", status.Error(codes.Unauthenticated, "authorization token is not provided")
	}

	token := authHeader[0]
	// Remove Bearer prefix if present
	if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
		token = token[7:]
	}
	return token, nil
}
