package repository

import (
	"context"
	"time"

	"nexuscore-backend/internal/session"
)

// SessionRepository keeps the live sessions of the process.
type SessionRepository interface {
	Create(ctx context.Context, s *session.Controller) error
	// Get returns the session and marks it as seen.
	Get(ctx context.Context, id string) (*session.Controller, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*session.Controller, error)
	Count(ctx context.Context) (int, error)
	// DeleteIdle evicts sessions not seen since cutoff, stops their flows
	// and returns the evicted ids.
	DeleteIdle(ctx context.Context, cutoff time.Time) ([]string, error)
}
