// Package seed is the mock data store every session starts from.
package seed

import (
	"strings"
	"time"

	"nexuscore-backend/internal/domain"

	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// Data is one independent copy of the seed collections.
type Data struct {
	Members   []*domain.Member
	Posts     []*domain.Post
	BlogPosts []domain.BlogPost
	Products  []domain.ProductItem
	Wallets   []domain.Wallet
}

// Shortcut pre-fills a known seed email for quick access login.
type Shortcut struct {
	Label string `json:"label"`
	Email string `json:"email"`
}

var QuickAccess = []Shortcut{
	{Label: "Admin", Email: "admin.prime@nexuscore.io"},
	{Label: "Finance", Email: "finance.lead@nexuscore.io"},
	{Label: "Creator", Email: "alex.creator@nexuscore.io"},
}

// LookupShortcut matches a quick access label case-insensitively.
func LookupShortcut(label string) (Shortcut, bool) {
	for _, s := range QuickAccess {
		if strings.EqualFold(s.Label, label) {
			return s, true
		}
	}
	return Shortcut{}, false
}

// Load builds a fresh copy of the seed, timestamps relative to now.
func Load(now time.Time) Data {
	return Data{
		Members:   members(now),
		Posts:     posts(now),
		BlogPosts: blogPosts(now),
		Products:  products(),
		Wallets:   wallets(),
	}
}

func members(now time.Time) []*domain.Member {
	return []*domain.Member{
		{
			ID:         "user-1",
			Email:      "alex.creator@nexuscore.io",
			Phone:      "+15550123",
			Status:     domain.MemberStatusActive,
			MFAEnabled: true,
			Role:       domain.RoleCreator,
			Points:     1250,
			CreatedAt:  now,
		},
		{
			ID:         "user-2",
			Email:      "sarah.j@nexuscore.io",
			Phone:      "+15550222",
			Status:     domain.MemberStatusActive,
			MFAEnabled: true,
			Role:       domain.RoleCreator,
			Points:     840,
			CreatedAt:  now.Add(-30 * day),
		},
		{
			ID:         "user-3",
			Email:      "m.chen@nexuscore.io",
			Phone:      "+15550333",
			Status:     domain.MemberStatusSuspended,
			MFAEnabled: false,
			Role:       domain.RoleStaff,
			Points:     420,
			CreatedAt:  now.Add(-60 * day),
		},
		{
			ID:         "user-4",
			Email:      "elena.r@nexuscore.io",
			Phone:      "+15550444",
			Status:     domain.MemberStatusActive,
			MFAEnabled: true,
			Role:       domain.RoleCustomer,
			Points:     150,
			CreatedAt:  now.Add(-10 * day),
		},
		{
			ID:         "user-5",
			Email:      "banned.bot@nexuscore.io",
			Phone:      "+15550999",
			Status:     domain.MemberStatusBanned,
			MFAEnabled: false,
			Role:       domain.RoleCustomer,
			Points:     0,
			CreatedAt:  now.Add(-180 * day),
		},
		{
			ID:         "user-6",
			Email:      "admin.prime@nexuscore.io",
			Phone:      "+15550111",
			Status:     domain.MemberStatusActive,
			MFAEnabled: true,
			Role:       domain.RoleCompanyAdmin,
			Points:     5000,
			CreatedAt:  now.Add(-365 * day),
		},
		{
			ID:         "user-7",
			Email:      "finance.lead@nexuscore.io",
			Phone:      "+15550777",
			Status:     domain.MemberStatusActive,
			MFAEnabled: true,
			Role:       domain.RoleFinanceAdmin,
			Points:     3500,
			CreatedAt:  now.Add(-180 * day),
		},
	}
}

func posts(now time.Time) []*domain.Post {
	return []*domain.Post{
		{
			ID:         "post-1",
			AuthorID:   "user-2",
			AuthorName: "Sarah J.",
			Title:      "Future of Decentralized Identity",
			Content:    "Exploring how NexusCore integrates MFA with on-chain signatures to ensure truly secure creator environments...",
			Status:     domain.PostStatusPublished,
			Likes:      []string{"user-4", "user-6"},
			Comments: []domain.Comment{
				{
					ID:         "c-1",
					AuthorID:   "user-4",
					AuthorName: "Elena Rossi",
					Content:    "This is exactly what the industry needs. Sovereignty is key!",
					CreatedAt:  now.Add(-30 * time.Minute),
				},
			},
			CreatedAt: now.Add(-time.Hour),
		},
		{
			ID:         "post-2",
			AuthorID:   "user-3",
			AuthorName: "Marketing Team",
			Title:      "Product Launch: NexusPay v2",
			Content:    "We are excited to announce multi-modal payments are now live for all creators. Support your favorites via Stripe or Crypto.",
			Status:     domain.PostStatusPublished,
			Likes:      []string{"user-1"},
			Comments:   []domain.Comment{},
			CreatedAt:  now.Add(-day),
		},
	}
}

func blogPosts(now time.Time) []domain.BlogPost {
	return []domain.BlogPost{
		{
			ID:         "blog-1",
			AuthorName: "Julian Vane",
			Title:      "The Sovereign Creator: Navigating the Post-Platform Era",
			Excerpt:    "Platform risk is the silent killer of creative careers. Learn how to build on protocols, not products.",
			Content:    "Long form content goes here...",
			Category:   "STRATEGY",
			ReadTime:   "8 min read",
			ImageURL:   "https://images.unsplash.com/photo-1497215728101-856f4ea42174?q=80&w=2070&auto=format&fit=crop",
			CreatedAt:  now.Add(-2 * day),
		},
		{
			ID:         "blog-2",
			AuthorName: "Elena Rossi",
			Title:      "Algorithmic Resistance: Why Human Curation Wins",
			Excerpt:    "In an AI-saturated world, the human touch becomes the ultimate luxury good. How to leverage taste as a moat.",
			Content:    "Long form content goes here...",
			Category:   "CULTURE",
			ReadTime:   "5 min read",
			ImageURL:   "https://images.unsplash.com/photo-1550745165-9bc0b252726f?q=80&w=2070&auto=format&fit=crop",
			CreatedAt:  now.Add(-5 * day),
		},
		{
			ID:         "blog-3",
			AuthorName: "Marcus Chen",
			Title:      "Decentralized Treasury: Managing Your Creator Equity",
			Excerpt:    "Financial literacy for the digital nomad. Transitioning from monthly tips to long-term asset management.",
			Content:    "Long form content goes here...",
			Category:   "FINANCE",
			ReadTime:   "12 min read",
			ImageURL:   "https://images.unsplash.com/photo-1639762681485-074b7f938ba0?q=80&w=2064&auto=format&fit=crop",
			CreatedAt:  now.Add(-7 * day),
		},
	}
}

func products() []domain.ProductItem {
	return []domain.ProductItem{
		{
			ID:              "prod-1",
			CreatorID:       "user-2",
			Name:            "Advanced Tokenomics Guide",
			Price:           decimal.RequireFromString("49.99"),
			Currency:        domain.DefaultCurrency,
			AcceptedMethods: []domain.PaymentMethod{domain.PaymentMethodStripe, domain.PaymentMethodWallet},
		},
		{
			ID:              "prod-2",
			CreatorID:       "user-1",
			Name:            "Consultation Hour",
			Price:           decimal.RequireFromString("150.00"),
			Currency:        domain.DefaultCurrency,
			AcceptedMethods: []domain.PaymentMethod{domain.PaymentMethodStripe, domain.PaymentMethodLocal},
		},
	}
}

func wallets() []domain.Wallet {
	return []domain.Wallet{
		{
			ID:       "w-1",
			OwnerID:  "user-1",
			Address:  "0x71C7656EC7ab88b098defB751B7401B5f6d8976F",
			Currency: domain.CurrencyUSDT,
			Balance:  decimal.RequireFromString("1250.50"),
		},
		{
			ID:       "w-2",
			OwnerID:  "user-1",
			Address:  "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa",
			Currency: domain.CurrencyBTC,
			Balance:  decimal.RequireFromString("0.045"),
		},
	}
}
