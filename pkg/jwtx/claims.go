package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. Access tokens are short-lived; refresh tokens last
// long enough that an active user rarely has to log in again.
const (
	DefaultAccessTokenTTL  = 1 * time.Hour
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Token use values carried in the "use" claim. A refresh token must never be
// accepted where an access token is expected, and vice versa.
const (
	UseAccess  = "access"
	UseRefresh = "refresh"
)

var (
	ErrIssuer      = errors.New("jwtx: unexpected issuer")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrTokenUse    = errors.New("jwtx: unexpected token use")
)

// Claims are the token claims shared by access and refresh tokens. Both
// carry the user id (sub) and the session id (sid); the session must resolve
// to a live record at verification time, signature validity alone is never
// enough.
type Claims struct {
	jwt.RegisteredClaims

	// SID is the server-side session identifier backing this token pair.
	SID string `json:"sid,omitempty"`

	// Use distinguishes access tokens from refresh tokens.
	Use string `json:"use,omitempty"`

	// Name is the display name of the authenticated user.
	Name string `json:"name,omitempty"`
}

// NewClaims builds minimally-correct claims for a token.
func NewClaims(
	subject, sid, use string,
	ttl time.Duration,
	issuer, name string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        newJTI(),
		},
		SID:  sid,
		Use:  use,
		Name: name,
	}
}

// newJTI returns a URL-safe random identifier for the "jti" claim.
func newJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks the issuer matches the expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it becomes valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}

// ValidateUse checks the "use" claim matches the expected token use.
func (c *Claims) ValidateUse(expected string) error {
	if c.Use != expected {
		return ErrTokenUse
	}
	return nil
}
