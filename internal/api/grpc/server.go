// Package grpc exposes process health and a read-only view of sessions over
// gRPC.
package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"nexuscore-backend/internal/api/grpc/interceptor"
)

// Server pairs the gRPC server with its health service so shutdown can flip
// the status before draining.
type Server struct {
	*grpc.Server
	health *health.Server
}

// NewServer registers health, reflection and, when sessions is non-nil, the
// session state service.
func NewServer(sessions SessionSource) *Server {
	s := grpc.NewServer(
		grpc.UnaryInterceptor(interceptor.NewSessionInterceptor(sessions).Unary()),
	)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	if sessions != nil {
		RegisterSessionStateServer(s, NewSessionStateServer(sessions))
	}

	// Register reflection service for grpcurl
	reflection.Register(s)

	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return &Server{Server: s, health: hs}
}

// Shutdown reports NOT_SERVING and then stops gracefully.
func (s *Server) Shutdown() {
	s.health.Shutdown()
	s.GracefulStop()
}
