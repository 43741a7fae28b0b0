package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// KeyPair holds an Ed25519 signing keypair plus its key identifier. The kid
// is derived from the public key so it stays stable across restarts.
type KeyPair struct {
	KID     string
	Private ed25519.PrivateKey
	Public  ed25519.PublicKey
}

// GenerateKeyPair creates a fresh Ed25519 keypair.
func GenerateKeyPair() (KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return KeyPair{}, fmt.Errorf("jwtx: generate key: %w", err)
	}
	return KeyPair{KID: kidFor(pub), Private: priv, Public: pub}, nil
}

// LoadOrGenerateKeyPair loads a PKCS8 PEM Ed25519 private key from path,
// generating and persisting one when the file does not exist. Persisting the
// key keeps issued tokens verifiable across restarts.
func LoadOrGenerateKeyPair(path string) (KeyPair, error) {
	path = filepath.Clean(path)

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		kp, err := GenerateKeyPair()
		if err != nil {
			return KeyPair{}, err
		}
		if err := writeKeyPair(path, kp); err != nil {
			return KeyPair{}, err
		}
		return kp, nil
	}
	if err != nil {
		return KeyPair{}, fmt.Errorf("jwtx: read key file: %w", err)
	}

	return parseKeyPair(raw)
}

func parseKeyPair(pemBytes []byte) (KeyPair, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return KeyPair{}, errors.New("jwtx: invalid PEM for Ed25519 key")
	}
	if block.Type != "PRIVATE KEY" {
		return KeyPair{}, fmt.Errorf("jwtx: expected PRIVATE KEY, got %q (Ed25519 requires PKCS8)", block.Type)
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return KeyPair{}, fmt.Errorf("jwtx: parse PKCS8: %w", err)
	}

	priv, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return KeyPair{}, errors.New("jwtx: not an Ed25519 private key")
	}
	pub := priv.Public().(ed25519.PublicKey)

	return KeyPair{KID: kidFor(pub), Private: priv, Public: pub}, nil
}

func writeKeyPair(path string, kp KeyPair) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	der, err := x509.MarshalPKCS8PrivateKey(kp.Private)
	if err != nil {
		return fmt.Errorf("jwtx: marshal PKCS8: %w", err)
	}

	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	return os.WriteFile(path, pemBytes, 0600)
}

// kidFor derives a short stable key identifier from the public key bytes.
func kidFor(pub ed25519.PublicKey) string {
	sum := sha256.Sum256(pub)
	return base64.RawURLEncoding.EncodeToString(sum[:8])
}
