package service

import (
	"context"
	"fmt"
	"strings"

	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/enrichment"
	"nexuscore-backend/internal/logger"
	"nexuscore-backend/internal/repository"
	"nexuscore-backend/internal/session"
)

type insightService struct {
	sessionRepo repository.SessionRepository
	enricher    *enrichment.Enricher
}

func NewInsightService(sessionRepo repository.SessionRepository, enricher *enrichment.Enricher) InsightService {
	return &insightService{
		sessionRepo: sessionRepo,
		enricher:    enricher,
	}
}

func (s *insightService) RefreshCommunityInsight(ctx context.Context, sessionID string) (string, error) {
	ctrl, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return s.refresh(ctx, ctrl), nil
}

func (s *insightService) PrimeCommunityInsight(ctx context.Context, sessionID string) error {
	ctrl, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	go s.refresh(context.WithoutCancel(ctx), ctrl)
	return nil
}

func (s *insightService) RefreshAll(ctx context.Context) (int, error) {
	sessions, err := s.sessionRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	for _, ctrl := range sessions {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		s.refresh(ctx, ctrl)
	}
	return len(sessions), nil
}

func (s *insightService) refresh(ctx context.Context, ctrl *session.Controller) string {
	text := s.enricher.Fetch(ctx, enrichment.CommunityInsight(ctrl.Posts()))
	ctrl.SetInsight(text)
	logger.WithSession(ctrl.ID()).Debug("Community insight refreshed", "length", len(text))
	return text
}

// EnrichMember fetches the member's audit, and a manifesto when the member
// has none, without blocking the caller. Results land on the controller
// whenever they arrive.
func (s *insightService) EnrichMember(ctx context.Context, sessionID, memberID string) error {
	ctrl, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	member, err := ctrl.Member(memberID)
	if err != nil {
		return err
	}

	detached := context.WithoutCancel(ctx)
	go func() {
		text := s.enricher.Fetch(detached, enrichment.MemberAudit(member))
		if err := ctrl.SetAudit(member.ID, text); err != nil {
			logger.Warn("Dropping member audit", "member_id", member.ID, "error", err)
		}
	}()
	if member.OwnershipManifesto == "" {
		go func() {
			text := s.enricher.Fetch(detached, enrichment.OwnershipManifesto(member.Role))
			if err := ctrl.SetManifesto(member.ID, text); err != nil {
				logger.Warn("Dropping ownership manifesto", "member_id", member.ID, "error", err)
			}
		}()
	}
	return nil
}

func (s *insightService) MarketingCopy(ctx context.Context, sessionID, topic string, copyType enrichment.CopyType) (string, error) {
	ctrl, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if err := ctrl.Authorize(domain.ViewAIStudio); err != nil {
		return "", err
	}
	if !copyType.Valid() {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownCopyType, copyType)
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", nil
	}
	return s.enricher.Fetch(ctx, enrichment.MarketingCopy(topic, copyType)), nil
}
