package service

import (
	"context"
	"fmt"

	"nexuscore-backend/internal/config"
	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/logger"
	"nexuscore-backend/internal/repository"
	"nexuscore-backend/internal/session"

	"golang.org/x/crypto/bcrypt"
)

type profileService struct {
	sessionRepo repository.SessionRepository
	latency     config.LatencyConfig
}

func NewProfileService(sessionRepo repository.SessionRepository, latency config.LatencyConfig) ProfileService {
	return &profileService{
		sessionRepo: sessionRepo,
		latency:     latency,
	}
}

func (s *profileService) SaveProfile(ctx context.Context, sessionID, bio string) (*domain.Member, error) {
	ctrl, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if ctrl.CurrentUser() == nil {
		return nil, domain.ErrAuthRequired
	}
	if err := simulateLatency(ctx, s.latency.ProfileSave); err != nil {
		return nil, err
	}
	return ctrl.SaveProfile(bio)
}

// UpdatePassword stores a new hash for the acting member. The current
// password is not verified, matching login.
func (s *profileService) UpdatePassword(ctx context.Context, sessionID, current, next, confirm string) error {
	logger.EnterMethod("ProfileService.UpdatePassword", "session_id", sessionID)

	ctrl, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if ctrl.CurrentUser() == nil {
		return domain.ErrAuthRequired
	}
	if next == "" {
		return domain.ErrPasswordRequired
	}
	if next != confirm {
		return domain.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := simulateLatency(ctx, s.latency.PasswordUpdate); err != nil {
		return err
	}
	if err := ctrl.SetPasswordHash(string(hash)); err != nil {
		return err
	}
	logger.ExitMethod("ProfileService.UpdatePassword")
	return nil
}

func (s *profileService) UpdateSettings(ctx context.Context, sessionID string, settings session.Settings) (session.Settings, error) {
	ctrl, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return session.Settings{}, err
	}
	return ctrl.UpdateSettings(settings)
}
