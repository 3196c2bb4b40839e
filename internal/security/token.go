package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type for this endpoint")
)

type TokenType string

const (
	TokenTypeSession TokenType = "session"
)

const (
	tokenIssuer   = "nexuscore-session"
	tokenAudience = "nexuscore-api"
)

// SessionClaims names the server-side session a bearer token belongs to
type SessionClaims struct {
	SessionID string    `json:"session_id"`
	Type      TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	GenerateSessionToken(sessionID string) (string, time.Time, error)
	ValidateToken(tokenString string) (*SessionClaims, error)
}

type tokenManager struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, expiry time.Duration) TokenManager {
	return &tokenManager{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

func (m *tokenManager) GenerateSessionToken(sessionID string) (string, time.Time, error) {
	issued := m.now()
	expires := issued.Add(m.expiry)
	claims := SessionClaims{
		SessionID: sessionID,
		Type:      TokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(issued),
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

func (m *tokenManager) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithAudience(tokenAudience))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != TokenTypeSession {
		return nil, ErrWrongTokenType
	}
	// Subject and SessionID are written together; fall back for older tokens
	if claims.SessionID == "" {
		claims.SessionID = claims.Subject
	}
	return claims, nil
}
