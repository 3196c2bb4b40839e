package session

import (
	"slices"

	"nexuscore-backend/internal/config"
	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/flow"

	"github.com/shopspring/decimal"
)

// State is the navigation-level snapshot of a session.
type State struct {
	SessionID        string               `json:"session_id"`
	CurrentUser      *domain.Member       `json:"current_user"`
	CurrentRole      domain.Role          `json:"current_role,omitempty"`
	ActiveView       domain.View          `json:"active_view"`
	SelectedMemberID string               `json:"selected_member_id,omitempty"`
	AuthPrompt       bool                 `json:"auth_prompt"`
	GuestID          string               `json:"guest_id"`
	Settings         Settings             `json:"settings"`
	MemberCount      int                  `json:"member_count"`
	Checkout         *flow.CheckoutStatus `json:"checkout,omitempty"`
	Link             *flow.LinkStatus     `json:"link,omitempty"`
}

type FeedView struct {
	Posts   []*domain.Post `json:"posts"`
	Insight string         `json:"insight"`
	ActorID string         `json:"actor_id"`
}

type DashboardView struct {
	ActiveNodes  int             `json:"active_nodes"`
	Reputation   int             `json:"reputation"`
	PaymentCount int             `json:"payment_count"`
	Volume       decimal.Decimal `json:"volume"`
	Insight      string          `json:"insight"`
}

type TreasuryView struct {
	Payments []domain.PaymentRecord `json:"payments"`
	Wallets  []domain.Wallet        `json:"wallets"`
	Volume   decimal.Decimal        `json:"volume"`
}

// ProfileView is one member's detail page.
type ProfileView struct {
	Member   *domain.Member         `json:"member"`
	Wallets  []domain.Wallet        `json:"wallets"`
	Payments []domain.PaymentRecord `json:"payments"`
	Audit    string                 `json:"audit,omitempty"`
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{
		SessionID:        c.id,
		CurrentUser:      c.currentUser.Clone(),
		CurrentRole:      c.currentRole,
		ActiveView:       c.activeView,
		SelectedMemberID: c.selectedMemberID,
		AuthPrompt:       c.authPrompt,
		GuestID:          c.guestID,
		Settings:         c.settings,
		MemberCount:      len(c.members),
	}
	if c.checkout != nil {
		status := c.checkout.Status()
		st.Checkout = &status
	}
	if c.link != nil {
		status := c.link.Status()
		st.Link = &status
	}
	return st
}

func (c *Controller) Feed() FeedView {
	c.mu.Lock()
	defer c.mu.Unlock()

	posts := make([]*domain.Post, 0, len(c.posts))
	for _, p := range c.posts {
		posts = append(posts, p.Clone())
	}
	return FeedView{Posts: posts, Insight: c.insight, ActorID: c.actorIDLocked()}
}

// Posts returns copies of every post, for insight prompts.
func (c *Controller) Posts() []*domain.Post {
	return c.Feed().Posts
}

func (c *Controller) BlogPosts() []domain.BlogPost {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.blogPosts)
}

func (c *Controller) Products() []domain.ProductItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.ProductItem, len(c.products))
	for i, p := range c.products {
		p.AcceptedMethods = slices.Clone(p.AcceptedMethods)
		out[i] = p
	}
	return out
}

// Dashboard requires an admin-class member.
func (c *Controller) Dashboard() (DashboardView, error) {
	if err := c.Authorize(domain.ViewDashboard); err != nil {
		return DashboardView{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	view := DashboardView{
		ActiveNodes:  len(c.members),
		PaymentCount: len(c.payments),
		Volume:       volume(c.payments),
		Insight:      c.insight,
	}
	if c.currentUser != nil {
		view.Reputation = c.currentUser.Points
	}
	return view, nil
}

// Treasury requires a finance-class member.
func (c *Controller) Treasury() (TreasuryView, error) {
	if err := c.Authorize(domain.ViewTreasury); err != nil {
		return TreasuryView{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return TreasuryView{
		Payments: slices.Clone(c.payments),
		Wallets:  slices.Clone(c.wallets),
		Volume:   volume(c.payments),
	}, nil
}

// Profile renders a member detail page. An empty memberID means the member
// in focus (see SelectedMember).
func (c *Controller) Profile(memberID string) (ProfileView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var m *domain.Member
	if memberID == "" {
		m = c.selectedLocked()
	} else {
		m = c.memberLocked(memberID)
	}
	if m == nil {
		return ProfileView{}, domain.ErrMemberNotFound
	}

	view := ProfileView{
		Member:   m.Clone(),
		Wallets:  []domain.Wallet{},
		Payments: []domain.PaymentRecord{},
		Audit:    c.audits[m.ID],
	}
	for _, w := range c.wallets {
		if w.OwnerID == m.ID {
			view.Wallets = append(view.Wallets, w)
		}
	}
	for _, p := range c.payments {
		if p.PayerID == m.ID || p.PayeeID == m.ID {
			view.Payments = append(view.Payments, p)
		}
	}
	return view, nil
}

// Registry filters the member directory for admin-class members.
func (c *Controller) Registry(search, status string) ([]*domain.Member, error) {
	if err := c.Authorize(domain.ViewMembers); err != nil {
		return nil, err
	}
	return c.FilterMembers(search, status), nil
}

func (c *Controller) Payments() []domain.PaymentRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.payments)
}

func (c *Controller) Wallets() []domain.Wallet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.wallets)
}

// Access reports the decision a navigation to view would take, without
// taking it.
func (c *Controller) Access(view domain.View) config.Decision {
	c.mu.Lock()
	defer c.mu.Unlock()
	return config.Decide(view, c.currentUser)
}

func volume(payments []domain.PaymentRecord) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}
