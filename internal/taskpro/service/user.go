package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/domain"
	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/store"
	"github.com/NituAlexandru/TaskPro-backend/pkg/cryptox"
	"github.com/NituAlexandru/TaskPro-backend/pkg/idx"
	"github.com/NituAlexandru/TaskPro-backend/pkg/slogx"
)

const maxCommentLength = 2048

// UserService covers profile reads and edits, theme preference, avatar
// references, and help requests.
type UserService struct {
	Store store.Store
}

// Profile returns the caller's user record.
func (s *UserService) Profile(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

// UpdateProfile changes the display name and optionally the password.
func (s *UserService) UpdateProfile(ctx context.Context, userID, name string, newPassword *string) (domain.User, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return domain.User{}, err
	}

	var hash *string
	if newPassword != nil {
		if len(*newPassword) < minPasswordLength {
			return domain.User{}, fmt.Errorf("%w: password must be at least %d characters",
				ErrValidation, minPasswordLength)
		}
		h, err := cryptox.HashPassword(*newPassword)
		if err != nil {
			return domain.User{}, err
		}
		hash = &h
	}

	if err := s.Store.Users().UpdateProfile(ctx, userID, name, hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return s.Profile(ctx, userID)
}

// UpdateTheme sets the UI theme preference.
func (s *UserService) UpdateTheme(ctx context.Context, userID string, theme domain.Theme) (domain.User, error) {
	if !domain.ValidTheme(theme) {
		return domain.User{}, fmt.Errorf("%w: unknown theme %q", ErrValidation, theme)
	}
	if err := s.Store.Users().UpdateTheme(ctx, userID, theme); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return s.Profile(ctx, userID)
}

// UpdateAvatar stores the avatar reference on the profile. Upload handling
// (multipart parsing, temp files) lives at the HTTP layer.
func (s *UserService) UpdateAvatar(ctx context.Context, userID, avatarURL string) (domain.User, error) {
	if strings.TrimSpace(avatarURL) == "" {
		return domain.User{}, fmt.Errorf("%w: avatar reference is required", ErrValidation)
	}
	if err := s.Store.Users().UpdateAvatarURL(ctx, userID, avatarURL); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return s.Profile(ctx, userID)
}

// SubmitHelpRequest persists a support message. Outbound delivery is an
// external concern; the record is what we guarantee.
func (s *UserService) SubmitHelpRequest(ctx context.Context, userID, email, comment string) (domain.HelpRequest, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return domain.HelpRequest{}, err
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return domain.HelpRequest{}, fmt.Errorf("%w: comment is required", ErrValidation)
	}
	if len(comment) > maxCommentLength {
		return domain.HelpRequest{}, fmt.Errorf("%w: comment exceeds %d characters", ErrValidation, maxCommentLength)
	}

	hr := domain.HelpRequest{
		ID:        idx.New().String(),
		UserID:    userID,
		Email:     email,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.HelpRequests().CreateHelpRequest(ctx, hr); err != nil {
		return domain.HelpRequest{}, err
	}

	slogx.FromContext(ctx).Info("help request received",
		slog.String("help_request_id", hr.ID), slog.String("user_id", userID))
	return hr, nil
}
