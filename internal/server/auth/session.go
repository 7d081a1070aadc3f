package auth

import (
	"time"

	"github.com/avoronov/travelog/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Session is the decoded payload of a session token.
type Session struct {
	AccountID    string
	Username     string
	Role         Role
	TokenID      string
	TokenVersion int64
	ExpiresAt    time.Time
}

// Expired reports whether the session token's own expiry has passed.
// Kept separate from parsing so the version check can run on expired tokens.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// SessionClaims is the session token payload.
type SessionClaims struct {
	jwt.RegisteredClaims
	AccountID    string `json:"account_id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	TokenID      string `json:"token_id"`
	TokenVersion int64  `json:"token_version"`
}

// GenerateSessionToken signs a session token for an authenticated account.
// tokenVersion must be the account's current version at issue time: bumping
// the version later invalidates this token.
func GenerateSessionToken(s *Session, secret []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		AccountID:    s.AccountID,
		Username:     s.Username,
		Role:         s.Role.String(),
		TokenID:      s.TokenID,
		TokenVersion: s.TokenVersion,
	})

	return token.SignedString(secret)
}

// ParseSessionToken verifies the token signature and decodes the session.
// Claim validation is deliberately skipped: a token with a stale version is
// still structurally decodable, and the trust-boundary middleware checks the
// version and the expiry itself.
func ParseSessionToken(tokenString string, secret []byte) (*Session, error) {
	claims := &SessionClaims{}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithoutClaimsValidation(),
	)
	_, err := parser.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return secret, nil })
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	role, err := ParseRole(claims.Role)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	session := &Session{
		AccountID:    claims.AccountID,
		Username:     claims.Username,
		Role:         role,
		TokenID:      claims.TokenID,
		TokenVersion: claims.TokenVersion,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}
