package domain

// View is a navigable screen of the session.
type View string

const (
	ViewDashboard   View = "DASHBOARD"
	ViewCommunity   View = "COMMUNITY"
	ViewBlog        View = "BLOG"
	ViewMarketplace View = "MARKETPLACE"
	ViewAIStudio    View = "AI_STUDIO"
	ViewTreasury    View = "TREASURY"
	ViewSettings    View = "SETTINGS"
	ViewMembers     View = "MEMBERS"
	ViewProfile     View = "PROFILE"
	ViewWallet      View = "WALLET"
)

// DefaultView is the public feed every session starts on and falls back to.
const DefaultView = ViewCommunity
