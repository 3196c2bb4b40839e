package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"nexuscore-backend/internal/flow/flowtest"
	"nexuscore-backend/internal/repository/memory"
	"nexuscore-backend/internal/security"
	"nexuscore-backend/internal/service"
)

func dial(t *testing.T, srv *Server) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHealth(t *testing.T) {
	conn := dial(t, NewServer(nil))

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}

func TestSessionState(t *testing.T) {
	ctx := context.Background()
	clock := flowtest.NewClock(time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC))
	sessions := service.NewSessionService(memory.NewStore(clock.Now), security.NewTokenManager("grpc-test", time.Hour), clock, time.Hour, nil)
	conn := dial(t, NewServer(sessions))

	ctrl, token, _, err := sessions.Open(ctx)
	require.NoError(t, err)
	m, ok := ctrl.FindMemberByEmail("alex.creator@nexuscore.io")
	require.True(t, ok)
	ctrl.Authenticate(m)

	authed := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)

	t.Run("State", func(t *testing.T) {
		out := new(structpb.Struct)
		require.NoError(t, conn.Invoke(authed, stateMethod, &emptypb.Empty{}, out))
		st := out.AsMap()
		assert.Equal(t, ctrl.ID(), st["session_id"])
		assert.Equal(t, "COMMUNITY", st["active_view"])
		user, ok := st["current_user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "user-1", user["id"])
	})

	t.Run("Feed", func(t *testing.T) {
		out := new(structpb.Struct)
		require.NoError(t, conn.Invoke(authed, feedMethod, &emptypb.Empty{}, out))
		posts, ok := out.AsMap()["posts"].([]any)
		require.True(t, ok)
		assert.NotEmpty(t, posts)
	})

	t.Run("MissingToken", func(t *testing.T) {
		err := conn.Invoke(ctx, stateMethod, &emptypb.Empty{}, new(structpb.Struct))
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("ClosedSession", func(t *testing.T) {
		require.NoError(t, sessions.Close(ctx, ctrl.ID()))
		err := conn.Invoke(authed, stateMethod, &emptypb.Empty{}, new(structpb.Struct))
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})
}

func TestGetSessionIDFromContext(t *testing.T) {
	_, err := GetSessionIDFromContext(context.Background())
	assert.Error(t, err)

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(SessionIDMetadataKey, "sess-1"))
	id, err := GetSessionIDFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", id)
}
