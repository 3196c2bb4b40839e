package grpc

import (
	"context"
	"encoding/json"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"nexuscore-backend/internal/api/grpc/interceptor"
	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/session"
)

const (
	sessionServiceName = "nexuscore.v1.Session"
	stateMethod        = "/" + sessionServiceName + "/State"
	feedMethod         = "/" + sessionServiceName + "/Feed"
)

// SessionSource resolves bearer tokens and looks up sessions by id.
type SessionSource interface {
	interceptor.SessionResolver
	Get(ctx context.Context, sessionID string) (*session.Controller, error)
}

// SessionStateService is the read-only session surface. Messages are
// well-known types so clients need no generated stubs.
type SessionStateService interface {
	State(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
	Feed(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
}

type sessionStateServer struct {
	sessions SessionSource
}

func NewSessionStateServer(sessions SessionSource) SessionStateService {
	return &sessionStateServer{sessions: sessions}
}

func (s *sessionStateServer) State(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	ctrl, err := s.controller(ctx)
	if err != nil {
		return nil, err
	}
	return toStruct(ctrl.Snapshot())
}

func (s *sessionStateServer) Feed(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	ctrl, err := s.controller(ctx)
	if err != nil {
		return nil, err
	}
	return toStruct(ctrl.Feed())
}

func (s *sessionStateServer) controller(ctx context.Context) (*session.Controller, error) {
	id, err := GetSessionIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	ctrl, err := s.sessions.Get(ctx, id)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil, status.Error(codes.NotFound, err.Error())
	}
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to load session: %v", err)
	}
	return ctrl, nil
}

func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode: %v", err)
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode: %v", err)
	}
	return out, nil
}

func RegisterSessionStateServer(s grpc.ServiceRegistrar, srv SessionStateService) {
	s.RegisterService(&sessionServiceDesc, srv)
}

var sessionServiceDesc = grpc.ServiceDesc{
	ServiceName: sessionServiceName,
	HandlerType: (*SessionStateService)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "State", Handler: unaryHandler(stateMethod, SessionStateService.State)},
		{MethodName: "Feed", Handler: unaryHandler(feedMethod, SessionStateService.Feed)},
	},
	Streams: []grpc.StreamDesc{},
}

type sessionMethod func(SessionStateService, context.Context, *emptypb.Empty) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call sessionMethod) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, ic grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(emptypb.Empty)
		if err := dec(in); err != nil {
			return nil, err
		}
		if ic == nil {
			return call(srv.(SessionStateService), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(SessionStateService), ctx, req.(*emptypb.Empty))
		}
		return ic(ctx, in, info, handler)
	}
}
