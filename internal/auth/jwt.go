// Package auth signs and verifies the bearer tokens that carry a caller's
// principal.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rpggio/gigboard/internal/domain/user"
)

// ErrInvalidToken is returned for missing, malformed, expired, or
// mis-signed tokens.
var ErrInvalidToken = errors.New("invalid token")

const issuer = "gigboard"

type claims struct {
	Role user.Role `json:"role"`
	jwt.RegisteredClaims
}

// Tokens issues and parses HS256 tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens creates a token issuer. ttl bounds token lifetime.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for p.
func (t *Tokens) Issue(p user.Principal) (string, error) {
	now := t.now()
	c := claims{
		Role: p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Parse verifies token and returns the principal it carries.
func (t *Tokens) Parse(token string) (user.Principal, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return user.Principal{}, ErrInvalidToken
	}
	if c.Subject == "" || !c.Role.Valid() {
		return user.Principal{}, ErrInvalidToken
	}
	return user.Principal{UserID: c.Subject, Role: c.Role}, nil
}
