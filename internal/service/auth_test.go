package service_test

import (
	"context"
	"testing"
	"time"

	"nexuscore-backend/internal/config"
	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/metrics"
	"nexuscore-backend/internal/service"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		ctrl, _ := newController(t)
		repo := repoFor(ctrl)
		svc := service.NewAuthService(repo, config.LatencyConfig{}, nil)

		m, err := svc.Login(ctx, testSessionID, "  Alex.Creator@nexuscore.io ", "anything")
		require.NoError(t, err)
		assert.Equal(t, "user-1", m.ID)
		assert.Equal(t, domain.RoleCreator, ctrl.Snapshot().CurrentRole)
		repo.AssertExpectations(t)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		ctrl, _ := newController(t)
		svc := service.NewAuthService(repoFor(ctrl), config.LatencyConfig{}, nil)

		_, err := svc.Login(ctx, testSessionID, "ghost@nexuscore.io", "")
		assert.ErrorIs(t, err, domain.ErrCredentialMismatch)
		assert.Nil(t, ctrl.CurrentUser())
	})

	t.Run("Banned", func(t *testing.T) {
		ctrl, _ := newController(t)
		svc := service.NewAuthService(repoFor(ctrl), config.LatencyConfig{}, nil)

		_, err := svc.Login(ctx, testSessionID, "banned.bot@nexuscore.io", "")
		assert.ErrorIs(t, err, domain.ErrIdentityRevoked)
		assert.Nil(t, ctrl.CurrentUser())
	})

	t.Run("SuspendedMayLogIn", func(t *testing.T) {
		ctrl, _ := newController(t)
		svc := service.NewAuthService(repoFor(ctrl), config.LatencyConfig{}, nil)

		m, err := svc.Login(ctx, testSessionID, "m.chen@nexuscore.io", "")
		require.NoError(t, err)
		assert.Equal(t, domain.MemberStatusSuspended, m.Status)
	})

	t.Run("SessionNotFound", func(t *testing.T) {
		repo := new(MockSessionRepo)
		repo.On("Get", ctx, "missing").Return(nil, domain.ErrSessionNotFound)
		svc := service.NewAuthService(repo, config.LatencyConfig{}, nil)

		_, err := svc.Login(ctx, "missing", "alex.creator@nexuscore.io", "")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("LatencyHonoursContext", func(t *testing.T) {
		ctrl, _ := newController(t)
		repo := new(MockSessionRepo)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		repo.On("Get", cctx, testSessionID).Return(ctrl, nil)
		svc := service.NewAuthService(repo, config.LatencyConfig{Login: time.Hour}, nil)

		_, err := svc.Login(cctx, testSessionID, "alex.creator@nexuscore.io", "")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, ctrl.CurrentUser())
	})
}

func TestAuthService_LoginMetrics(t *testing.T) {
	ctx := context.Background()
	ctrl, _ := newController(t)
	m := metrics.New("nexus_test")
	svc := service.NewAuthService(repoFor(ctrl), config.LatencyConfig{}, m)

	_, err := svc.Login(ctx, testSessionID, "admin.prime@nexuscore.io", "")
	require.NoError(t, err)
	_, err = svc.Login(ctx, testSessionID, "nobody@nexuscore.io", "")
	require.Error(t, err)

	n, err := testutil.GatherAndCount(m.Registry(), "nexus_test_auth_attempts_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		ctrl, _ := newController(t)
		before := ctrl.Snapshot().MemberCount
		svc := service.NewAuthService(repoFor(ctrl), config.LatencyConfig{}, nil)

		m, err := svc.Register(ctx, testSessionID, "fresh@nexuscore.io", "s3cret", domain.RoleCustomer)
		require.NoError(t, err)
		assert.Regexp(t, `^user-[a-z0-9]{5}$`, m.ID)
		assert.Equal(t, "fresh@nexuscore.io", m.Email)
		assert.Equal(t, domain.RoleCustomer, m.Role)
		assert.Equal(t, domain.MemberStatusActive, m.Status)
		assert.Equal(t, 0, m.Points)
		assert.True(t, m.MFAEnabled)
		assert.Equal(t, ctrl.Now(), m.CreatedAt)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte("s3cret")))
		assert.Equal(t, before+1, ctrl.Snapshot().MemberCount)
	})

	t.Run("DuplicateEmailCreatesSecondIdentity", func(t *testing.T) {
		ctrl, _ := newController(t)
		before := ctrl.Snapshot().MemberCount
		svc := service.NewAuthService(repoFor(ctrl), config.LatencyConfig{}, nil)

		m, err := svc.Register(ctx, testSessionID, "alex.creator@nexuscore.io", "x", domain.RoleCreator)
		require.NoError(t, err)
		assert.NotEqual(t, "user-1", m.ID)
		assert.Equal(t, before+1, ctrl.Snapshot().MemberCount)
	})

	t.Run("Validation", func(t *testing.T) {
		ctrl, _ := newController(t)
		svc := service.NewAuthService(repoFor(ctrl), config.LatencyConfig{}, nil)

		_, err := svc.Register(ctx, testSessionID, "   ", "x", domain.RoleCustomer)
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
		_, err = svc.Register(ctx, testSessionID, "boss@nexuscore.io", "x", domain.RoleCompanyAdmin)
		assert.ErrorIs(t, err, domain.ErrRoleNotSelectable)
		assert.Nil(t, ctrl.CurrentUser())
	})
}

func TestAuthService_QuickAccess(t *testing.T) {
	ctx := context.Background()
	ctrl, _ := newController(t)
	svc := service.NewAuthService(repoFor(ctrl), config.LatencyConfig{}, nil)

	m, err := svc.QuickAccess(ctx, testSessionID, "finance")
	require.NoError(t, err)
	assert.Equal(t, "finance.lead@nexuscore.io", m.Email)
	assert.Equal(t, domain.RoleFinanceAdmin, m.Role)

	_, err = svc.QuickAccess(ctx, testSessionID, "root")
	assert.ErrorIs(t, err, domain.ErrCredentialMismatch)

	require.NoError(t, svc.Logout(ctx, testSessionID))
	assert.Nil(t, ctrl.CurrentUser())
}
