package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/enrichment"
	"nexuscore-backend/internal/service"
	"nexuscore-backend/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func promptContaining(s string) any {
	return mock.MatchedBy(func(p string) bool { return strings.Contains(p, s) })
}

func TestInsightService_RefreshCommunityInsight(t *testing.T) {
	ctx := context.Background()
	ctrl, _ := newController(t)
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, promptContaining("community analyst")).
		Return("  Builders are shipping.  ", nil).Once()
	svc := service.NewInsightService(repoFor(ctrl), enrichment.NewEnricher(gen, time.Second, nil))

	text, err := svc.RefreshCommunityInsight(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, "Builders are shipping.", text)
	assert.Equal(t, text, ctrl.Feed().Insight)
	gen.AssertExpectations(t)
}

func TestInsightService_RefreshFallsBack(t *testing.T) {
	ctx := context.Background()
	ctrl, _ := newController(t)
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("quota")).Once()
	svc := service.NewInsightService(repoFor(ctrl), enrichment.NewEnricher(gen, time.Second, nil))

	text, err := svc.RefreshCommunityInsight(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, enrichment.Fallback(enrichment.KindCommunityInsight), text)
}

func TestInsightService_RefreshAll(t *testing.T) {
	ctx := context.Background()
	a, _ := newController(t)
	b, _ := newController(t)
	repo := new(MockSessionRepo)
	repo.On("List", ctx).Return([]*session.Controller{a, b}, nil)
	svc := service.NewInsightService(repo, enrichment.NewEnricher(enrichment.Unavailable{}, time.Second, nil))

	n, err := svc.RefreshAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NotEmpty(t, a.Insight())
	assert.Equal(t, a.Insight(), b.Insight())
	repo.AssertExpectations(t)
}

func TestInsightService_EnrichMember(t *testing.T) {
	ctx := context.Background()
	ctrl, _ := newController(t)
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, promptContaining("behavioral audit")).Return("Audit ok.", nil).Once()
	gen.On("Generate", mock.Anything, promptContaining("behavioral audit")).Return("Audit v2.", nil).Once()
	gen.On("Generate", mock.Anything, promptContaining("Manifesto")).Return("Own it.", nil).Once()
	svc := service.NewInsightService(repoFor(ctrl), enrichment.NewEnricher(gen, time.Second, nil))

	require.NoError(t, svc.EnrichMember(ctx, testSessionID, "user-1"))
	assert.Eventually(t, func() bool {
		audit, ok := ctrl.Audit("user-1")
		m, _ := ctrl.Member("user-1")
		return ok && audit == "Audit ok." && m.OwnershipManifesto == "Own it."
	}, time.Second, 5*time.Millisecond)

	// The manifesto is kept; only the audit is fetched again.
	require.NoError(t, svc.EnrichMember(ctx, testSessionID, "user-1"))
	assert.Eventually(t, func() bool {
		audit, _ := ctrl.Audit("user-1")
		return audit == "Audit v2."
	}, time.Second, 5*time.Millisecond)
	gen.AssertNumberOfCalls(t, "Generate", 3)

	assert.ErrorIs(t, svc.EnrichMember(ctx, testSessionID, "user-404"), domain.ErrMemberNotFound)
}

func TestInsightService_EnrichMemberOutlivesRequest(t *testing.T) {
	ctrl, _ := newController(t)
	reqCtx, cancel := context.WithCancel(context.Background())
	repo := new(MockSessionRepo)
	repo.On("Get", reqCtx, testSessionID).Return(ctrl, nil)

	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return("", nil).
		WaitUntil(time.After(20 * time.Millisecond))
	svc := service.NewInsightService(repo, enrichment.NewEnricher(gen, time.Second, nil))

	require.NoError(t, svc.EnrichMember(reqCtx, testSessionID, "user-4"))
	cancel()

	assert.Eventually(t, func() bool {
		audit, _ := ctrl.Audit("user-4")
		return audit == "Audit data unavailable at this time."
	}, time.Second, 5*time.Millisecond)
}

func TestInsightService_MarketingCopy(t *testing.T) {
	ctx := context.Background()
	ctrl, _ := newController(t)
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, promptContaining("product description about: Quantum Vault")).
		Return("Secure your legacy.", nil).Once()
	svc := service.NewInsightService(repoFor(ctrl), enrichment.NewEnricher(gen, time.Second, nil))

	_, err := svc.MarketingCopy(ctx, testSessionID, "Quantum Vault", enrichment.CopyTypeProduct)
	assert.ErrorIs(t, err, domain.ErrAuthRequired)

	signIn(t, ctrl, "elena.r@nexuscore.io")
	_, err = svc.MarketingCopy(ctx, testSessionID, "Quantum Vault", "TWEET")
	assert.ErrorIs(t, err, domain.ErrUnknownCopyType)

	text, err := svc.MarketingCopy(ctx, testSessionID, "  ", enrichment.CopyTypePost)
	require.NoError(t, err)
	assert.Empty(t, text)

	text, err = svc.MarketingCopy(ctx, testSessionID, "Quantum Vault", enrichment.CopyTypeProduct)
	require.NoError(t, err)
	assert.Equal(t, "Secure your legacy.", text)
	gen.AssertExpectations(t)
}
