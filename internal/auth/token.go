// Package auth builds the short-lived signed tokens used to authenticate
// against the catalog service.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"program-catalog/internal/common/errors"
)

// TokenBuilder signs short-lived bearer tokens for a given user identity.
type TokenBuilder struct {
	secret []byte
	issuer string
}

// NewTokenBuilder creates a token builder signing with the given secret.
func NewTokenBuilder(secret, issuer string) *TokenBuilder {
	return &TokenBuilder{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// Build signs a token for the user identified by username and email,
// carrying the requested scopes and expiring after expiresIn.
// A signing failure is fatal and surfaced to the caller.
func (b *TokenBuilder) Build(username, email string, scopes []string, expiresIn time.Duration) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"iss":                b.issuer,
		"sub":                username,
		"preferred_username": username,
		"email":              email,
		"scopes":             scopes,
		"iat":                now.Unix(),
		"exp":                now.Add(expiresIn).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(b.secret)
	if err != nil {
		return "", errors.AuthError("failed to sign API token", err)
	}

	return signed, nil
}

// Verify parses a signed token and returns its claims. Used by tests and
// by operators debugging issued tokens; the catalog service itself is the
// token's audience.
func (b *TokenBuilder) Verify(signed string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.AuthError("unexpected signing method", nil)
		}
		return b.secret, nil
	})
	if err != nil {
		return nil, errors.AuthError("failed to parse token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.AuthError("invalid token", nil)
	}

	return claims, nil
}
