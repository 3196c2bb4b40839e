package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/repository"
	"nexuscore-backend/internal/session"
)

var errDuplicateSession = errors.New("session already exists")

type sessionEntry struct {
	controller *session.Controller
	seq        int
	lastSeen   time.Time
}

type sessionRepository struct {
	mu       sync.RWMutex
	now      func() time.Time
	seq      int
	sessions map[string]*sessionEntry
}

func NewSessionRepository(now func() time.Time) repository.SessionRepository {
	return &sessionRepository{
		now:      now,
		sessions: make(map[string]*sessionEntry),
	}
}

func (r *sessionRepository) Create(ctx context.Context, s *session.Controller) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[s.ID()]; ok {
		return fmt.Errorf("%w: %s", errDuplicateSession, s.ID())
	}
	r.seq++
	r.sessions[s.ID()] = &sessionEntry{controller: s, seq: r.seq, lastSeen: r.now()}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*session.Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	entry.lastSeen = r.now()
	return entry.controller, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	entry, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return domain.ErrSessionNotFound
	}
	entry.controller.Stop()
	return nil
}

// List returns sessions oldest first.
func (r *sessionRepository) List(ctx context.Context) ([]*session.Controller, error) {
	r.mu.RLock()
	entries := make([]*sessionEntry, 0, len(r.sessions))
	for _, e := range r.sessions {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].seq < entries[j].seq
	})
	out := make([]*session.Controller, len(entries))
	for i, e := range entries {
		out[i] = e.controller
	}
	return out, nil
}

func (r *sessionRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions), nil
}

func (r *sessionRepository) DeleteIdle(ctx context.Context, cutoff time.Time) ([]string, error) {
	r.mu.Lock()
	var evicted []*sessionEntry
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			evicted = append(evicted, e)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	ids := make([]string, 0, len(evicted))
	for _, e := range evicted {
		e.controller.Stop()
		ids = append(ids, e.controller.ID())
	}
	sort.Strings(ids)
	return ids, nil
}
