package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/domain"
	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/service"
)

func TestUserProfile(t *testing.T) {
	st := newTestStore(t)
	auth := newAuthService(t, st)
	users := &service.UserService{Store: st}
	ctx := context.Background()

	res := registerUser(t, auth, "Alice", "alice@example.com")

	t.Run("profile read", func(t *testing.T) {
		u, err := users.Profile(ctx, res.User.ID)
		require.NoError(t, err)
		require.Equal(t, "Alice", u.Name)
		require.Equal(t, domain.ThemeDark, u.Theme)
	})

	t.Run("rename without password change keeps login working", func(t *testing.T) {
		u, err := users.UpdateProfile(ctx, res.User.ID, "Alicia", nil)
		require.NoError(t, err)
		require.Equal(t, "Alicia", u.Name)

		_, err = auth.Login(ctx, "alice@example.com", "Secret123!")
		require.NoError(t, err)
	})

	t.Run("password change invalidates the old one", func(t *testing.T) {
		newPass := "Fresh-Pass-99"
		_, err := users.UpdateProfile(ctx, res.User.ID, "Alicia", &newPass)
		require.NoError(t, err)

		_, err = auth.Login(ctx, "alice@example.com", "Secret123!")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
		_, err = auth.Login(ctx, "alice@example.com", newPass)
		require.NoError(t, err)
	})

	t.Run("theme update validates the enum", func(t *testing.T) {
		u, err := users.UpdateTheme(ctx, res.User.ID, domain.ThemeViolet)
		require.NoError(t, err)
		require.Equal(t, domain.ThemeViolet, u.Theme)

		_, err = users.UpdateTheme(ctx, res.User.ID, domain.Theme("neon"))
		require.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("avatar reference", func(t *testing.T) {
		u, err := users.UpdateAvatar(ctx, res.User.ID, "/uploads/avatars/alice.png")
		require.NoError(t, err)
		require.Equal(t, "/uploads/avatars/alice.png", u.AvatarURL)

		_, err = users.UpdateAvatar(ctx, res.User.ID, "  ")
		require.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("missing user maps to not found", func(t *testing.T) {
		_, err := users.Profile(ctx, "no-such-user")
		require.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestSubmitHelpRequest(t *testing.T) {
	st := newTestStore(t)
	auth := newAuthService(t, st)
	users := &service.UserService{Store: st}
	ctx := context.Background()

	res := registerUser(t, auth, "Alice", "alice@example.com")

	t.Run("persists the record", func(t *testing.T) {
		hr, err := users.SubmitHelpRequest(ctx, res.User.ID, "alice@example.com", "the board will not load")
		require.NoError(t, err)
		require.NotEmpty(t, hr.ID)
		require.Equal(t, res.User.ID, hr.UserID)
	})

	t.Run("validates input", func(t *testing.T) {
		_, err := users.SubmitHelpRequest(ctx, res.User.ID, "bad-email", "help")
		require.ErrorIs(t, err, service.ErrValidation)

		_, err = users.SubmitHelpRequest(ctx, res.User.ID, "alice@example.com", "   ")
		require.ErrorIs(t, err, service.ErrValidation)
	})
}
