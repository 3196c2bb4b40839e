package service

import (
	"context"
	"time"

	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/enrichment"
	"nexuscore-backend/internal/flow"
	"nexuscore-backend/internal/session"

	"github.com/shopspring/decimal"
)

type SessionService interface {
	Open(ctx context.Context) (*session.Controller, string, time.Time, error) // controller, bearer token, token expiry
	Resolve(ctx context.Context, token string) (*session.Controller, error)
	Get(ctx context.Context, sessionID string) (*session.Controller, error)
	Close(ctx context.Context, sessionID string) error
	SweepIdle(ctx context.Context) ([]string, error)
}

type AuthService interface {
	Login(ctx context.Context, sessionID, email, password string) (*domain.Member, error)
	Register(ctx context.Context, sessionID, email, password string, role domain.Role) (*domain.Member, error)
	QuickAccess(ctx context.Context, sessionID, label string) (*domain.Member, error)
	Logout(ctx context.Context, sessionID string) error
}

type ProfileService interface {
	SaveProfile(ctx context.Context, sessionID, bio string) (*domain.Member, error)
	UpdatePassword(ctx context.Context, sessionID, current, next, confirm string) error
	UpdateSettings(ctx context.Context, sessionID string, settings session.Settings) (session.Settings, error)
}

// CheckoutInput names what is being paid for. Amount is ignored for
// products, which are charged at their listed price.
type CheckoutInput struct {
	ContextType domain.ContextType
	ContextID   string
	Amount      decimal.Decimal
	PayeeID     string
}

type CheckoutService interface {
	Start(ctx context.Context, sessionID string, in CheckoutInput) (flow.CheckoutStatus, error)
	Status(ctx context.Context, sessionID string) (flow.CheckoutStatus, error)
	ChooseMethod(ctx context.Context, sessionID string, method domain.PaymentMethod) (flow.CheckoutStatus, error)
	Cancel(ctx context.Context, sessionID string) (flow.CheckoutStatus, error)
}

type GatewayService interface {
	Gateways() []domain.GatewayInfo
	Open(ctx context.Context, sessionID string, kind domain.GatewayKind) (flow.LinkStatus, error)
	Status(ctx context.Context, sessionID string) (flow.LinkStatus, error)
	Initiate(ctx context.Context, sessionID string) (flow.LinkStatus, error)
	Cancel(ctx context.Context, sessionID string) (flow.LinkStatus, error)
}

type InsightService interface {
	RefreshCommunityInsight(ctx context.Context, sessionID string) (string, error)
	// PrimeCommunityInsight starts a detached refresh for a freshly opened session.
	PrimeCommunityInsight(ctx context.Context, sessionID string) error
	// RefreshAll recomputes the community insight of every live session.
	RefreshAll(ctx context.Context) (int, error)
	// EnrichMember starts detached audit and manifesto fetches for a member.
	EnrichMember(ctx context.Context, sessionID, memberID string) error
	MarketingCopy(ctx context.Context, sessionID, topic string, copyType enrichment.CopyType) (string, error)
}
