package grpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// SessionIDMetadataKey carries the resolved session id to handlers.
const SessionIDMetadataKey = "session-id"

// GetSessionIDFromContext extracts the session ID written by the session
// interceptor.
func GetSessionIDFromContext(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", status.Errorf(codes.Unauthenticated, "metadata is not provided")
	}

	ids := md.Get(SessionIDMetadataKey)
	if len(ids) == 0 || ids[0] == "" {
		return "", status.Errorf(codes.Unauthenticated, "session_id is not provided in metadata")
	}
	return ids[0], nil
}
