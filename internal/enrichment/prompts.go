package enrichment

import (
	"fmt"
	"strings"
	"time"

	"nexuscore-backend/internal/domain"
)

const noPostsText = "No posts available to analyze."

// CopyType selects the form of generated marketing copy.
type CopyType string

const (
	CopyTypeProduct CopyType = "PRODUCT"
	CopyTypePost    CopyType = "POST"
)

func (t CopyType) Valid() bool {
	return t == CopyTypeProduct || t == CopyTypePost
}

func CommunityInsight(posts []*domain.Post) Request {
	if len(posts) == 0 {
		return Request{Kind: KindCommunityInsight, Immediate: noPostsText}
	}
	parts := make([]string, 0, len(posts))
	for _, p := range posts {
		parts = append(parts, fmt.Sprintf("Title: %s\nContent: %s", p.Title, p.Content))
	}
	return Request{
		Kind: KindCommunityInsight,
		Prompt: "You are a professional community analyst. Based on these posts, summarize the current vibes " +
			"and key topics in 2 punchy, professional sentences:\n\n" + strings.Join(parts, "\n\n"),
	}
}

func MemberAudit(m *domain.Member) Request {
	return Request{
		Kind: KindMemberAudit,
		Prompt: fmt.Sprintf(`Perform a security and behavioral audit for a member with the following profile:
Role: %s
Status: %s
MFA Enabled: %t
Joined: %s

Provide a 3-sentence summary:
1. A character assessment based on their role.
2. A security risk assessment focusing on wallet integrity.
3. A recommendation for ownership preservation.
Keep the tone extremely professional, technical, and slightly futuristic.`,
			m.Role, m.Status, m.MFAEnabled, m.CreatedAt.Format(time.RFC3339)),
	}
}

func OwnershipManifesto(role domain.Role) Request {
	return Request{
		Kind: KindOwnershipManifesto,
		Prompt: fmt.Sprintf(`Generate a short, powerful "Creative Ownership Manifesto" for a %s.
The manifesto should emphasize:
1. Digital sovereignty and asset control.
2. The sanctity of creative IP.
3. Wallet security as the foundation of freedom.
Tone: Visionary, slightly cyberpunk, and highly professional. Max 60 words.`, role),
	}
}

func MarketingCopy(topic string, copyType CopyType) Request {
	form := "community post"
	if copyType == CopyTypeProduct {
		form = "product description"
	}
	return Request{
		Kind: KindMarketingCopy,
		Prompt: fmt.Sprintf("Generate a high-conversion %s about: %s. Focus on urgency, innovation, and trust. "+
			"Keep it under 80 words.", form, topic),
	}
}
