package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates compact JWT strings and returns their parsed claims.
type Verifier interface {
	Verify(tokenStr string) (*Claims, error)
}

// KeySet holds the Ed25519 public keys trusted for verification, keyed by
// kid. Safe for concurrent use.
type KeySet struct {
	mu   sync.RWMutex
	keys map[string]ed25519.PublicKey
}

func NewKeySet(pairs ...KeyPair) *KeySet {
	ks := &KeySet{keys: make(map[string]ed25519.PublicKey, len(pairs))}
	for _, kp := range pairs {
		ks.keys[kp.KID] = kp.Public
	}
	return ks
}

func (ks *KeySet) Get(kid string) (ed25519.PublicKey, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	pub, ok := ks.keys[kid]
	if !ok {
		return nil, fmt.Errorf("jwtx: unknown kid %q", kid)
	}
	return pub, nil
}

// EdDSAVerifier validates JWTs signed with Ed25519.
type EdDSAVerifier struct {
	keys   *KeySet
	issuer string
}

// NewVerifier creates a verifier trusting the given key set and issuer.
func NewVerifier(keys *KeySet, issuer string) *EdDSAVerifier {
	return &EdDSAVerifier{keys: keys, issuer: issuer}
}

// Verify validates the JWT signature and registered claims.
func (v *EdDSAVerifier) Verify(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("jwtx: missing kid")
		}
		return v.keys.Get(kid)
	})
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("jwtx: invalid token claims")
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return nil, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return nil, err
	}

	return claims, nil
}
