// Package auth implements the signed tokens of the authentication protocol:
// time-boxed challenges naming a claimed identity, and post-login session
// tokens carrying a revocable version number. Both are HS256 JWTs.
package auth

import (
	"errors"
	"time"

	"github.com/avoronov/travelog/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the claimed (not yet proven) identity carried by a challenge.
// Verification of the challenge signature does NOT confirm that the caller is
// this identity; that binding happens only after the challenge response checks
// out against the stored account key.
type Identity struct {
	Username string
	Role     Role
}

// ChallengeClaims is the challenge token payload.
type ChallengeClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IssueChallenge signs a challenge for the claimed identity, valid for the
// given duration from now. The secret is the server's challenge-signing
// secret, distinct from any account key. The server keeps no record of issued
// challenges.
func IssueChallenge(identity Identity, secret []byte, issuer string, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, ChallengeClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		Username: identity.Username,
		Role:     identity.Role.String(),
	})

	return token.SignedString(secret)
}

// VerifyChallenge checks the challenge signature, issuer and validity window
// and returns the claimed identity unchanged.
//
// The returned errors (ErrTokenExpired, ErrInvalidToken) are for server-side
// logging only; callers facing unauthenticated clients must collapse them into
// one generic failure.
func VerifyChallenge(tokenString string, secret []byte, issuer string) (*Identity, error) {
	claims := &ChallengeClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	role, err := ParseRole(claims.Role)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	return &Identity{Username: claims.Username, Role: role}, nil
}
