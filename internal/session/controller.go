// Package session owns the state of one client session: the acting member,
// the mutable collections seeded at start, navigation and the open flows.
// Every mutation goes through the Controller lock, so actions apply in the
// order they arrive.
package session

import (
	"slices"
	"strings"
	"sync"
	"time"

	"nexuscore-backend/internal/config"
	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/flow"
	"nexuscore-backend/internal/logger"
	"nexuscore-backend/internal/seed"
	"nexuscore-backend/internal/utils"
)

const (
	likePoints    = 5
	commentPoints = 10

	anonymousAuthor = "Anonymous"
)

// Settings are the per-session toggles shown on the settings view.
type Settings struct {
	MFAEnabled    bool `json:"mfa_enabled"`
	Notifications bool `json:"notifications"`
}

type Controller struct {
	mu    sync.Mutex
	id    string
	clock flow.Clock

	guestID          string
	currentUser      *domain.Member
	currentRole      domain.Role
	members          []*domain.Member
	posts            []*domain.Post
	blogPosts        []domain.BlogPost
	products         []domain.ProductItem
	wallets          []domain.Wallet
	payments         []domain.PaymentRecord
	activeView       domain.View
	selectedMemberID string
	authPrompt       bool
	settings         Settings
	audits           map[string]string
	insight          string

	checkout *flow.Checkout
	link     *flow.Link
	hooks    Hooks
}

// New starts a guest session over its own copy of data.
func New(id string, data seed.Data, clock flow.Clock) *Controller {
	if clock == nil {
		clock = flow.RealClock()
	}
	return &Controller{
		id:         id,
		clock:      clock,
		guestID:    utils.NewGuestID(),
		members:    data.Members,
		posts:      data.Posts,
		blogPosts:  data.BlogPosts,
		products:   data.Products,
		wallets:    data.Wallets,
		activeView: domain.DefaultView,
		settings:   Settings{MFAEnabled: true, Notifications: true},
		audits:     make(map[string]string),
	}
}

func (c *Controller) ID() string {
	return c.id
}

func (c *Controller) Now() time.Time {
	return c.clock.Now()
}

// Authenticate makes member the acting identity. A member that is not yet in
// the collection (a fresh registration) is appended first.
func (c *Controller) Authenticate(member *domain.Member) {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing := c.memberLocked(member.ID)
	if existing == nil {
		existing = member.Clone()
		c.members = append(c.members, existing)
	}
	c.currentUser = existing
	c.currentRole = existing.Role
	c.authPrompt = false
	logger.WithSession(c.id).Info("Session authenticated", "member_id", existing.ID, "role", existing.Role)
}

// Logout drops the acting identity and returns to the public feed.
func (c *Controller) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.currentUser = nil
	c.currentRole = ""
	c.activeView = domain.DefaultView
	c.selectedMemberID = ""
	logger.WithSession(c.id).Info("Session logged out")
}

func (c *Controller) DismissAuthPrompt() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authPrompt = false
}

// ChangeView applies one navigation request and reports the decision taken.
func (c *Controller) ChangeView(target domain.View) (config.Decision, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	level, ok := config.GetAccessLevel(target)
	if !ok {
		return "", domain.ErrUnknownView
	}

	decision := config.Decide(target, c.currentUser)
	switch decision {
	case config.DecisionPromptAuth:
		c.authPrompt = true
	case config.DecisionRedirectFeed:
		c.activeView = domain.DefaultView
	case config.DecisionAllow:
		c.activeView = target
		if level == config.AccessPublic || target == domain.ViewProfile {
			c.selectedMemberID = ""
		}
	}
	logger.WithSession(c.id).Debug("View change", "target", target, "decision", decision, "active_view", c.activeView)
	return decision, nil
}

// Authorize checks whether the acting identity may read a gated view without
// navigating to it. Guests get ErrAuthRequired and the auth prompt is raised.
func (c *Controller) Authorize(view domain.View) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch config.Decide(view, c.currentUser) {
	case config.DecisionPromptAuth:
		c.authPrompt = true
		return domain.ErrAuthRequired
	case config.DecisionRedirectFeed:
		return domain.ErrForbidden
	}
	return nil
}

// ToggleLike flips the actor's like on a post and reports whether the post is
// now liked. Points are only awarded to a signed-in member on a new like.
func (c *Controller) ToggleLike(postID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	post := c.postLocked(postID)
	if post == nil {
		return false, domain.ErrPostNotFound
	}

	actor := c.actorIDLocked()
	if idx := slices.Index(post.Likes, actor); idx >= 0 {
		post.Likes = append(post.Likes[:idx], post.Likes[idx+1:]...)
		return false, nil
	}

	post.Likes = append(post.Likes, actor)
	if c.currentUser != nil {
		c.currentUser.Points += likePoints
	}
	return true, nil
}

// AddComment appends a comment to a post. Blank text is ignored and returns
// a nil comment with no error.
func (c *Controller) AddComment(postID, text string) (*domain.Comment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	post := c.postLocked(postID)
	if post == nil {
		return nil, domain.ErrPostNotFound
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	comment := domain.Comment{
		ID:         utils.NewCommentID(),
		AuthorID:   c.actorIDLocked(),
		AuthorName: anonymousAuthor,
		Content:    text,
		CreatedAt:  c.clock.Now(),
	}
	if c.currentUser != nil {
		comment.AuthorName = c.currentUser.DisplayName()
		c.currentUser.Points += commentPoints
	}
	post.Comments = append(post.Comments, comment)
	return &comment, nil
}

// FilterMembers matches search against email or id (case-insensitive) and
// status exactly, or any status for "ALL" and "".
func (c *Controller) FilterMembers(search, status string) []*domain.Member {
	c.mu.Lock()
	defer c.mu.Unlock()

	needle := strings.ToLower(search)
	out := make([]*domain.Member, 0, len(c.members))
	for _, m := range c.members {
		matchesSearch := strings.Contains(strings.ToLower(m.Email), needle) ||
			strings.Contains(strings.ToLower(m.ID), needle)
		matchesStatus := status == "" || status == domain.StatusFilterAll || string(m.Status) == status
		if matchesSearch && matchesStatus {
			out = append(out, m.Clone())
		}
	}
	return out
}

func (c *Controller) SelectMember(memberID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.memberLocked(memberID) == nil {
		return domain.ErrMemberNotFound
	}
	c.selectedMemberID = memberID
	return nil
}

func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedMemberID = ""
}

// SelectedMember is the member in focus: the acting member on the profile
// view, otherwise the registry selection. Nil when nothing is in focus.
func (c *Controller) SelectedMember() *domain.Member {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedLocked().Clone()
}

func (c *Controller) SaveProfile(bio string) (*domain.Member, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.currentUser == nil {
		return nil, domain.ErrAuthRequired
	}
	c.currentUser.Bio = bio
	return c.currentUser.Clone(), nil
}

func (c *Controller) SetManifesto(memberID, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.memberLocked(memberID)
	if m == nil {
		return domain.ErrMemberNotFound
	}
	m.OwnershipManifesto = text
	return nil
}

func (c *Controller) SetAudit(memberID, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.memberLocked(memberID) == nil {
		return domain.ErrMemberNotFound
	}
	c.audits[memberID] = text
	return nil
}

func (c *Controller) Audit(memberID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	text, ok := c.audits[memberID]
	return text, ok
}

func (c *Controller) SetInsight(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.insight = text
}

func (c *Controller) Insight() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.insight
}

// UpdateSettings stores the toggles; the MFA toggle also lands on the member.
func (c *Controller) UpdateSettings(s Settings) (Settings, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.currentUser == nil {
		return Settings{}, domain.ErrAuthRequired
	}
	c.settings = s
	c.currentUser.MFAEnabled = s.MFAEnabled
	return c.settings, nil
}

func (c *Controller) SetPasswordHash(hash string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.currentUser == nil {
		return domain.ErrAuthRequired
	}
	c.currentUser.PasswordHash = hash
	return nil
}

// CurrentUser returns a copy of the acting member, nil for guests.
func (c *Controller) CurrentUser() *domain.Member {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentUser.Clone()
}

// ActorID is the acting member id, or the session's guest id.
func (c *Controller) ActorID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.actorIDLocked()
}

// FindMemberByEmail resolves an email case-insensitively.
func (c *Controller) FindMemberByEmail(email string) (*domain.Member, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, m := range c.members {
		if strings.EqualFold(m.Email, email) {
			return m.Clone(), true
		}
	}
	return nil, false
}

func (c *Controller) Member(memberID string) (*domain.Member, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.memberLocked(memberID)
	if m == nil {
		return nil, domain.ErrMemberNotFound
	}
	return m.Clone(), nil
}

func (c *Controller) Post(postID string) (*domain.Post, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.postLocked(postID)
	if p == nil {
		return nil, domain.ErrPostNotFound
	}
	return p.Clone(), nil
}

func (c *Controller) Product(productID string) (domain.ProductItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.products {
		if p.ID == productID {
			return p, nil
		}
	}
	return domain.ProductItem{}, domain.ErrProductNotFound
}

func (c *Controller) actorIDLocked() string {
	if c.currentUser != nil {
		return c.currentUser.ID
	}
	return c.guestID
}

func (c *Controller) memberLocked(memberID string) *domain.Member {
	for _, m := range c.members {
		if m.ID == memberID {
			return m
		}
	}
	return nil
}

func (c *Controller) postLocked(postID string) *domain.Post {
	for _, p := range c.posts {
		if p.ID == postID {
			return p
		}
	}
	return nil
}

func (c *Controller) selectedLocked() *domain.Member {
	if c.activeView == domain.ViewProfile && c.currentUser != nil {
		return c.currentUser
	}
	if c.selectedMemberID == "" {
		return nil
	}
	return c.memberLocked(c.selectedMemberID)
}
