package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the decoded, UNVERIFIED payload of a backend-issued token.
// The client never checks the signature; trust in these claims is delegated
// entirely to the backend, and they must not be treated as verified identity.
type TokenClaims struct {
	UserID    string
	ExpiresAt *time.Time
}

// DecodeToken extracts claims from a bearer token without verifying it.
// A malformed token yields nil, never an error.
func DecodeToken(token string) *TokenClaims {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	tc := &TokenClaims{}
	if v, ok := claims["userId"].(string); ok {
		tc.UserID = v
	}
	if tc.UserID == "" {
		if sub, err := claims.GetSubject(); err == nil {
			tc.UserID = sub
		}
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		tc.ExpiresAt = &t
	}
	return tc
}
