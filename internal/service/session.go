package service

import (
	"context"
	"fmt"
	"time"

	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/flow"
	"nexuscore-backend/internal/logger"
	"nexuscore-backend/internal/metrics"
	"nexuscore-backend/internal/repository"
	"nexuscore-backend/internal/security"
	"nexuscore-backend/internal/seed"
	"nexuscore-backend/internal/session"
	"nexuscore-backend/internal/utils"
)

type sessionService struct {
	sessionRepo repository.SessionRepository
	tokens      security.TokenManager
	clock       flow.Clock
	idleTTL     time.Duration
	metrics     *metrics.Metrics
}

func NewSessionService(
	sessionRepo repository.SessionRepository,
	tokens security.TokenManager,
	clock flow.Clock,
	idleTTL time.Duration,
	m *metrics.Metrics,
) SessionService {
	if clock == nil {
		clock = flow.RealClock()
	}
	return &sessionService{
		sessionRepo: sessionRepo,
		tokens:      tokens,
		clock:       clock,
		idleTTL:     idleTTL,
		metrics:     m,
	}
}

func (s *sessionService) Open(ctx context.Context) (*session.Controller, string, time.Time, error) {
	logger.EnterMethod("SessionService.Open")

	ctrl := session.New(utils.NewSessionID(), seed.Load(s.clock.Now()), s.clock)
	ctrl.SetHooks(session.Hooks{
		PaymentRecorded: func(domain.PaymentRecord) { s.metrics.FlowEvent("checkout", "completed") },
		WalletLinked:    func(domain.Wallet) { s.metrics.FlowEvent("gateway", "completed") },
	})
	if err := s.sessionRepo.Create(ctx, ctrl); err != nil {
		logger.ExitMethodWithError("SessionService.Open", err)
		return nil, "", time.Time{}, fmt.Errorf("failed to store session: %w", err)
	}

	token, expires, err := s.tokens.GenerateSessionToken(ctrl.ID())
	if err != nil {
		_ = s.sessionRepo.Delete(ctx, ctrl.ID())
		logger.ExitMethodWithError("SessionService.Open", err)
		return nil, "", time.Time{}, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.refreshGauge(ctx)
	logger.ExitMethod("SessionService.Open", "session_id", ctrl.ID())
	return ctrl, token, expires, nil
}

func (s *sessionService) Resolve(ctx context.Context, token string) (*session.Controller, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	return s.sessionRepo.Get(ctx, claims.SessionID)
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*session.Controller, error) {
	return s.sessionRepo.Get(ctx, sessionID)
}

func (s *sessionService) Close(ctx context.Context, sessionID string) error {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.refreshGauge(ctx)
	return nil
}

// SweepIdle evicts every session unseen for longer than the idle TTL.
func (s *sessionService) SweepIdle(ctx context.Context) ([]string, error) {
	cutoff := s.clock.Now().Add(-s.idleTTL)
	evicted, err := s.sessionRepo.DeleteIdle(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to sweep idle sessions: %w", err)
	}
	s.refreshGauge(ctx)
	return evicted, nil
}

func (s *sessionService) refreshGauge(ctx context.Context) {
	if n, err := s.sessionRepo.Count(ctx); err == nil {
		s.metrics.SetLiveSessions(n)
	}
}
