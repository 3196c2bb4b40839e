package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"nexuscore-backend/internal/config"
	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/logger"
	"nexuscore-backend/internal/metrics"
	"nexuscore-backend/internal/repository"
	"nexuscore-backend/internal/seed"
	"nexuscore-backend/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

const registeredPhone = "+1 000 0000"

type authService struct {
	sessionRepo repository.SessionRepository
	latency     config.LatencyConfig
	metrics     *metrics.Metrics
}

func NewAuthService(sessionRepo repository.SessionRepository, latency config.LatencyConfig, m *metrics.Metrics) AuthService {
	return &authService{
		sessionRepo: sessionRepo,
		latency:     latency,
		metrics:     m,
	}
}

// Login resolves email against the session's members. The password is
// accepted as entered and never checked.
func (s *authService) Login(ctx context.Context, sessionID, email, password string) (*domain.Member, error) {
	logger.EnterMethod("AuthService.Login", "session_id", sessionID, "email", email)

	ctrl, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := simulateLatency(ctx, s.latency.Login); err != nil {
		return nil, err
	}

	member, ok := ctrl.FindMemberByEmail(strings.TrimSpace(email))
	if !ok {
		s.metrics.AuthAttempt("login", "mismatch")
		logger.ExitMethodWithError("AuthService.Login", domain.ErrCredentialMismatch, "email", email)
		return nil, domain.ErrCredentialMismatch
	}
	if member.Status == domain.MemberStatusBanned {
		s.metrics.AuthAttempt("login", "revoked")
		logger.ExitMethodWithError("AuthService.Login", domain.ErrIdentityRevoked, "member_id", member.ID)
		return nil, domain.ErrIdentityRevoked
	}

	ctrl.Authenticate(member)
	s.metrics.AuthAttempt("login", "success")
	logger.ExitMethod("AuthService.Login", "member_id", member.ID)
	return ctrl.CurrentUser(), nil
}

// Register fabricates a new member. Duplicate emails are allowed and yield a
// second identity.
func (s *authService) Register(ctx context.Context, sessionID, email, password string, role domain.Role) (*domain.Member, error) {
	logger.EnterMethod("AuthService.Register", "session_id", sessionID, "email", email, "role", role)

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}
	if !slices.Contains(domain.SelfServiceRoles, role) {
		return nil, fmt.Errorf("%w: %s", domain.ErrRoleNotSelectable, role)
	}

	ctrl, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := simulateLatency(ctx, s.latency.Register); err != nil {
		return nil, err
	}

	member := &domain.Member{
		ID:           utils.NewMemberID(),
		Email:        email,
		Phone:        registeredPhone,
		Status:       domain.MemberStatusActive,
		MFAEnabled:   true,
		Role:         role,
		Points:       0,
		CreatedAt:    ctrl.Now(),
		PasswordHash: string(hash),
	}
	ctrl.Authenticate(member)
	s.metrics.AuthAttempt("register", "success")
	logger.ExitMethod("AuthService.Register", "member_id", member.ID)
	return ctrl.CurrentUser(), nil
}

// QuickAccess logs in with a seed shortcut. It is the login path with a
// pre-filled email and no other privilege.
func (s *authService) QuickAccess(ctx context.Context, sessionID, label string) (*domain.Member, error) {
	shortcut, ok := seed.LookupShortcut(label)
	if !ok {
		return nil, fmt.Errorf("%w: unknown quick access %q", domain.ErrCredentialMismatch, label)
	}
	return s.Login(ctx, sessionID, shortcut.Email, "")
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	ctrl, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	ctrl.Logout()
	return nil
}
