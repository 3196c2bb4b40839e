package config

import "nexuscore-backend/internal/domain"

type AccessLevel int

const (
	AccessPublic        AccessLevel = iota // Anyone, guest included
	AccessAuthenticated                    // Any signed-in member
	AccessAdminClass                       // COMPANY_ADMIN, GROUP_ADMIN
	AccessFinanceClass                     // FINANCE_ADMIN, COMPANY_ADMIN
)

// Decision is the outcome of one navigation request.
type Decision string

const (
	DecisionAllow        Decision = "ALLOW"
	DecisionRedirectFeed Decision = "REDIRECT_FEED"
	DecisionPromptAuth   Decision = "PROMPT_AUTH"
)

// ViewAccessConfig maps every view to the access level it requires
var ViewAccessConfig = map[domain.View]AccessLevel{
	// Public grid
	domain.ViewCommunity:   AccessPublic,
	domain.ViewBlog:        AccessPublic,
	domain.ViewMarketplace: AccessPublic,

	// Operations
	domain.ViewDashboard: AccessAdminClass,
	domain.ViewMembers:   AccessAdminClass,

	// Finance control
	domain.ViewTreasury: AccessFinanceClass,

	// Identity workspace
	domain.ViewProfile:  AccessAuthenticated,
	domain.ViewSettings: AccessAuthenticated,
	domain.ViewWallet:   AccessAuthenticated,
	domain.ViewAIStudio: AccessAuthenticated,
}

// GetAccessLevel returns the level for a view and whether the view exists
func GetAccessLevel(view domain.View) (AccessLevel, bool) {
	level, ok := ViewAccessConfig[view]
	return level, ok
}

// Decide consults the table once for (view, actor). A nil actor is a guest.
// Unknown views are treated like the most restrictive class.
func Decide(view domain.View, actor *domain.Member) Decision {
	level, ok := GetAccessLevel(view)
	if !ok {
		level = AccessAdminClass
	}
	if level == AccessPublic {
		return DecisionAllow
	}
	if actor == nil {
		return DecisionPromptAuth
	}

	switch level {
	case AccessAdminClass:
		if !actor.Role.AdminClass() {
			return DecisionRedirectFeed
		}
	case AccessFinanceClass:
		if !actor.Role.FinanceClass() {
			return DecisionRedirectFeed
		}
	}
	return DecisionAllow
}
