package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "a-test-secret-that-is-long-enough-123"

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	token, expires, err := tm.GenerateSessionToken("sess-42")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-42", claims.SessionID)
	assert.Equal(t, TokenTypeSession, claims.Type)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenManager_Rejects(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	t.Run("garbage", func(t *testing.T) {
		_, err := tm.ValidateToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewTokenManager("another-secret-that-is-long-enough-456", time.Hour)
		token, _, err := other.GenerateSessionToken("sess-1")
		require.NoError(t, err)
		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := &tokenManager{secret: []byte(testSecret), expiry: time.Minute, now: func() time.Time {
			return time.Now().Add(-time.Hour)
		}}
		token, _, err := past.GenerateSessionToken("sess-1")
		require.NoError(t, err)
		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong type", func(t *testing.T) {
		claims := SessionClaims{
			SessionID: "sess-1",
			Type:      "refresh",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				Issuer:    tokenIssuer,
				Audience:  jwt.ClaimStrings{tokenAudience},
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})
}
