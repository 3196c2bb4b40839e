package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFormats(t *testing.T) {
	tests := []struct {
		name    string
		gen     func() string
		pattern string
	}{
		{"member", NewMemberID, `^user-[a-z0-9]{5}$`},
		{"comment", NewCommentID, `^c-[a-z0-9]{5}$`},
		{"wallet", NewWalletID, `^w-[a-z0-9]{5}$`},
		{"transaction", NewTransactionID, `^TX-[A-Z0-9]{9}$`},
		{"guest", NewGuestID, `^guest-[a-z0-9]{9}$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Regexp(t, regexp.MustCompile(tt.pattern), tt.gen())
		})
	}
}

func TestIDsAreDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for range 200 {
		id := NewTransactionID()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestNewProviderRef(t *testing.T) {
	ref := NewProviderRef("ch_")
	assert.Regexp(t, `^ch_[1-9A-HJ-NP-Za-km-z]+$`, ref)
	assert.NotEqual(t, ref, NewProviderRef("ch_"))
}

func TestRandomHexAndDigits(t *testing.T) {
	assert.Regexp(t, `^[0-9a-f]{12}$`, RandomHex(6))
	assert.Regexp(t, `^[0-9]{4}$`, RandomDigits(4))
}
