package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid session token")
	ErrExpiredToken  = errors.New("session token has expired")
	ErrInvalidClaims = errors.New("invalid session token claims")
)

// SessionCookieName is the cookie carrying the signed session token
const SessionCookieName = "session_token"

// SessionConfig holds session token configuration
type SessionConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

// SessionClaims represents the claims stored in a session token
type SessionClaims struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	TokenVersion int    `json:"token_version"` // For invalidating all sessions at once
	jwt.RegisteredClaims
}

// SessionManager mints and validates signed session tokens. Tokens live in
// an HttpOnly cookie; the JTI identifies the session for revocation on logout.
type SessionManager struct {
	config SessionConfig
}

// NewSessionManager creates a new session manager
func NewSessionManager(config SessionConfig) *SessionManager {
	return &SessionManager{
		config: config,
	}
}

// Issue generates a new session token. Returns the signed token and its JTI.
func (m *SessionManager) Issue(userID uint, username string, tokenVersion int) (string, string, error) {
	now := time.Now()
	expiresAt := now.Add(m.config.Expiry)
	jti := uuid.New().String()

	claims := SessionClaims{
		UserID:       userID,
		Username:     username,
		TokenVersion: tokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.config.Issuer,
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(m.config.Secret))
	return signedToken, jti, err
}

// Validate checks a session token and returns its claims
func (m *SessionManager) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(m.config.Secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}

// Expiry returns the configured session lifetime
func (m *SessionManager) Expiry() time.Duration {
	return m.config.Expiry
}
