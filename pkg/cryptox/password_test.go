package cryptox_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NituAlexandru/TaskPro-backend/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Point the pepper at a throwaway location so tests never touch a real
	// pepper file.
	dir, err := os.MkdirTemp("", "cryptox-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := cryptox.HashPassword("Secret123!")
	require.NoError(t, err)
	require.Contains(t, hash, "$argon2id$v=19$")

	require.NoError(t, cryptox.VerifyPassword("Secret123!", hash))
	require.ErrorIs(t, cryptox.VerifyPassword("wrong", hash), cryptox.ErrPasswordMismatch)
}

func TestHashesAreSalted(t *testing.T) {
	a, err := cryptox.HashPassword("same-password")
	require.NoError(t, err)
	b, err := cryptox.HashPassword("same-password")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestVerifyPasswordRejectsMalformedHashes(t *testing.T) {
	for _, bad := range []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=19456,t=2,p=1$abc$def",
		"$argon2id$v=18$m=19456,t=2,p=1$abc$def",
	} {
		require.Error(t, cryptox.VerifyPassword("x", bad), "hash %q", bad)
	}
}

func TestGeneratePassword(t *testing.T) {
	a, err := cryptox.GeneratePassword()
	require.NoError(t, err)
	b, err := cryptox.GeneratePassword()
	require.NoError(t, err)

	require.Len(t, a, 24)
	require.NotEqual(t, a, b)
}
