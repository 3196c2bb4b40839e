package service

import (
	"context"

	"nexuscore-backend/internal/config"
	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/flow"
	"nexuscore-backend/internal/logger"
	"nexuscore-backend/internal/metrics"
	"nexuscore-backend/internal/repository"
)

type gatewayService struct {
	sessionRepo repository.SessionRepository
	timings     flow.LinkTimings
	metrics     *metrics.Metrics
}

func NewGatewayService(sessionRepo repository.SessionRepository, latency config.LatencyConfig, m *metrics.Metrics) GatewayService {
	return &gatewayService{
		sessionRepo: sessionRepo,
		timings: flow.LinkTimings{
			SecurityCheck: latency.GatewaySecurity,
			Handshake:     latency.GatewayHandshake,
			Confirm:       latency.GatewayConfirm,
		},
		metrics: m,
	}
}

func (s *gatewayService) Gateways() []domain.GatewayInfo {
	out := make([]domain.GatewayInfo, 0, len(domain.GatewayKinds))
	for _, kind := range domain.GatewayKinds {
		if info, ok := domain.LookupGateway(kind); ok {
			out = append(out, info)
		}
	}
	return out
}

func (s *gatewayService) Open(ctx context.Context, sessionID string, kind domain.GatewayKind) (flow.LinkStatus, error) {
	logger.EnterMethod("GatewayService.Open", "session_id", sessionID, "gateway", kind)

	ctrl, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return flow.LinkStatus{}, err
	}
	link, err := ctrl.BeginLink(kind, s.timings)
	if err != nil {
		logger.ExitMethodWithError("GatewayService.Open", err)
		return flow.LinkStatus{}, err
	}
	s.metrics.FlowEvent("gateway", "started")
	logger.ExitMethod("GatewayService.Open", "link_id", link.ID())
	return link.Status(), nil
}

func (s *gatewayService) Status(ctx context.Context, sessionID string) (flow.LinkStatus, error) {
	link, err := s.link(ctx, sessionID)
	if err != nil {
		return flow.LinkStatus{}, err
	}
	return link.Status(), nil
}

func (s *gatewayService) Initiate(ctx context.Context, sessionID string) (flow.LinkStatus, error) {
	link, err := s.link(ctx, sessionID)
	if err != nil {
		return flow.LinkStatus{}, err
	}
	if err := link.Initiate(); err != nil {
		return link.Status(), err
	}
	s.metrics.FlowEvent("gateway", "initiated")
	return link.Status(), nil
}

func (s *gatewayService) Cancel(ctx context.Context, sessionID string) (flow.LinkStatus, error) {
	link, err := s.link(ctx, sessionID)
	if err != nil {
		return flow.LinkStatus{}, err
	}
	if err := link.Cancel(); err != nil {
		return link.Status(), err
	}
	s.metrics.FlowEvent("gateway", "cancelled")
	return link.Status(), nil
}

func (s *gatewayService) link(ctx context.Context, sessionID string) (*flow.Link, error) {
	ctrl, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return ctrl.Link()
}
