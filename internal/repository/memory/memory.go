// Package memory holds the process-local repository implementations.
package memory

import (
	"time"

	"nexuscore-backend/internal/repository"
)

type Store struct {
	repository.SessionRepository
}

// NewStore builds every repository. now supplies last-seen timestamps.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		SessionRepository: NewSessionRepository(now),
	}
}
