package service

import (
	"context"
	"fmt"

	"nexuscore-backend/internal/config"
	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/flow"
	"nexuscore-backend/internal/logger"
	"nexuscore-backend/internal/metrics"
	"nexuscore-backend/internal/repository"
	"nexuscore-backend/internal/session"
)

type checkoutService struct {
	sessionRepo repository.SessionRepository
	timings     flow.CheckoutTimings
	metrics     *metrics.Metrics
}

func NewCheckoutService(sessionRepo repository.SessionRepository, latency config.LatencyConfig, m *metrics.Metrics) CheckoutService {
	return &checkoutService{
		sessionRepo: sessionRepo,
		timings: flow.CheckoutTimings{
			Processing: latency.CheckoutProcessing,
			Confirm:    latency.CheckoutConfirm,
		},
		metrics: m,
	}
}

func (s *checkoutService) Start(ctx context.Context, sessionID string, in CheckoutInput) (flow.CheckoutStatus, error) {
	logger.EnterMethod("CheckoutService.Start", "session_id", sessionID, "context", in.ContextType, "context_id", in.ContextID)

	ctrl, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return flow.CheckoutStatus{}, err
	}
	req, err := resolveCheckout(ctrl, in)
	if err != nil {
		logger.ExitMethodWithError("CheckoutService.Start", err)
		return flow.CheckoutStatus{}, err
	}

	co, err := ctrl.BeginCheckout(req, s.timings)
	if err != nil {
		logger.ExitMethodWithError("CheckoutService.Start", err)
		return flow.CheckoutStatus{}, err
	}
	s.metrics.FlowEvent("checkout", "started")
	logger.ExitMethod("CheckoutService.Start", "checkout_id", co.ID())
	return co.Status(), nil
}

func (s *checkoutService) Status(ctx context.Context, sessionID string) (flow.CheckoutStatus, error) {
	co, err := s.checkout(ctx, sessionID)
	if err != nil {
		return flow.CheckoutStatus{}, err
	}
	return co.Status(), nil
}

func (s *checkoutService) ChooseMethod(ctx context.Context, sessionID string, method domain.PaymentMethod) (flow.CheckoutStatus, error) {
	co, err := s.checkout(ctx, sessionID)
	if err != nil {
		return flow.CheckoutStatus{}, err
	}
	if err := co.Choose(method); err != nil {
		return co.Status(), err
	}
	s.metrics.FlowEvent("checkout", "method_chosen")
	logger.WithSession(sessionID).Info("Checkout method chosen", "checkout_id", co.ID(), "method", method)
	return co.Status(), nil
}

func (s *checkoutService) Cancel(ctx context.Context, sessionID string) (flow.CheckoutStatus, error) {
	co, err := s.checkout(ctx, sessionID)
	if err != nil {
		return flow.CheckoutStatus{}, err
	}
	if err := co.Cancel(); err != nil {
		return co.Status(), err
	}
	s.metrics.FlowEvent("checkout", "cancelled")
	return co.Status(), nil
}

func (s *checkoutService) checkout(ctx context.Context, sessionID string) (*flow.Checkout, error) {
	ctrl, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return ctrl.Checkout()
}

// resolveCheckout pins payee, amount and accepted methods from the context
// being paid for.
func resolveCheckout(ctrl *session.Controller, in CheckoutInput) (flow.CheckoutRequest, error) {
	req := flow.CheckoutRequest{
		Amount:      in.Amount,
		Currency:    domain.DefaultCurrency,
		ContextType: in.ContextType,
		ContextID:   in.ContextID,
		PayeeID:     in.PayeeID,
	}

	switch in.ContextType {
	case domain.ContextTypeTip:
		post, err := ctrl.Post(in.ContextID)
		if err != nil {
			return req, err
		}
		req.PayeeID = post.AuthorID
	case domain.ContextTypeProduct:
		product, err := ctrl.Product(in.ContextID)
		if err != nil {
			return req, err
		}
		req.Amount = product.Price
		req.PayeeID = product.CreatorID
		req.AcceptedMethods = product.AcceptedMethods
	case domain.ContextTypeSubscription:
		if req.PayeeID == "" {
			if m := ctrl.SelectedMember(); m != nil {
				req.PayeeID = m.ID
			}
		}
	default:
		return req, fmt.Errorf("%w %q", domain.ErrUnknownContext, in.ContextType)
	}
	return req, nil
}
