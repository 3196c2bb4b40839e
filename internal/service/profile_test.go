package service_test

import (
	"context"
	"testing"

	"nexuscore-backend/internal/config"
	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/service"
	"nexuscore-backend/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestProfileService_SaveProfile(t *testing.T) {
	ctx := context.Background()
	ctrl, _ := newController(t)
	svc := service.NewProfileService(repoFor(ctrl), config.LatencyConfig{})

	_, err := svc.SaveProfile(ctx, testSessionID, "hello")
	assert.ErrorIs(t, err, domain.ErrAuthRequired)

	signIn(t, ctrl, "sarah.j@nexuscore.io")
	m, err := svc.SaveProfile(ctx, testSessionID, "Building in public.")
	require.NoError(t, err)
	assert.Equal(t, "Building in public.", m.Bio)

	stored, err := ctrl.Member("user-2")
	require.NoError(t, err)
	assert.Equal(t, "Building in public.", stored.Bio)
}

func TestProfileService_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	ctrl, _ := newController(t)
	svc := service.NewProfileService(repoFor(ctrl), config.LatencyConfig{})

	assert.ErrorIs(t, svc.UpdatePassword(ctx, testSessionID, "", "a", "a"), domain.ErrAuthRequired)

	signIn(t, ctrl, "alex.creator@nexuscore.io")
	assert.ErrorIs(t, svc.UpdatePassword(ctx, testSessionID, "old", "", ""), domain.ErrPasswordRequired)
	assert.ErrorIs(t, svc.UpdatePassword(ctx, testSessionID, "old", "new-pass", "new-pasz"), domain.ErrPasswordMismatch)

	require.NoError(t, svc.UpdatePassword(ctx, testSessionID, "whatever", "new-pass", "new-pass"))
	m, err := ctrl.Member("user-1")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte("new-pass")))
}

func TestProfileService_UpdateSettings(t *testing.T) {
	ctx := context.Background()
	ctrl, _ := newController(t)
	signIn(t, ctrl, "finance.lead@nexuscore.io")
	svc := service.NewProfileService(repoFor(ctrl), config.LatencyConfig{})

	got, err := svc.UpdateSettings(ctx, testSessionID, session.Settings{MFAEnabled: false, Notifications: true})
	require.NoError(t, err)
	assert.False(t, got.MFAEnabled)
	assert.False(t, ctrl.CurrentUser().MFAEnabled)
	assert.Equal(t, got, ctrl.Snapshot().Settings)
}
