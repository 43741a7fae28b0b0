package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/domain"
	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/store"
	"github.com/NituAlexandru/TaskPro-backend/pkg/cryptox"
	"github.com/NituAlexandru/TaskPro-backend/pkg/idx"
	"github.com/NituAlexandru/TaskPro-backend/pkg/jwtx"
	"github.com/NituAlexandru/TaskPro-backend/pkg/slogx"
)

const (
	minPasswordLength = 8
	maxNameLength     = 64
)

// AuthService handles registration, login, token refresh, logout and the
// Google sign-in flow. Tokens are JWTs bound to a server-side session; the
// session must resolve live on every request, so deleting it at logout
// revokes every token issued against it.
type AuthService struct {
	Store      store.Store
	Signer     jwtx.Signer
	Verifier   jwtx.Verifier
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Google     GoogleExchanger // nil disables the Google flow
}

// AuthResult is a registered or logged-in user plus their token pair.
type AuthResult struct {
	User   domain.User
	Tokens domain.TokenPair
}

// Register creates a new account and logs it in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (AuthResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if err := validateName(name); err != nil {
		return AuthResult{}, err
	}
	if err := validateEmail(email); err != nil {
		return AuthResult{}, err
	}
	if len(password) < minPasswordLength {
		return AuthResult{}, fmt.Errorf("%w: password must be at least %d characters",
			ErrValidation, minPasswordLength)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return AuthResult{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Theme:        domain.ThemeDark,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return AuthResult{}, ErrEmailTaken
		}
		return AuthResult{}, err
	}

	slogx.FromContext(ctx).Info("user registered", slog.String("user_id", user.ID))
	return s.startSession(ctx, user)
}

// Login verifies credentials and issues a fresh session with a token pair.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = normalizeEmail(email)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		slogx.FromContext(ctx).Info("login failed", slog.String("user_id", user.ID))
		return AuthResult{}, ErrInvalidCredentials
	}

	return s.startSession(ctx, user)
}

// Refresh exchanges a valid refresh token for a new token pair bound to the
// same session. A revoked session invalidates the refresh token no matter
// how long its signature would remain valid.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	claims, err := s.Verifier.Verify(refreshToken)
	if err != nil {
		return domain.TokenPair{}, ErrInvalidRefresh
	}
	if err := claims.ValidateUse(jwtx.UseRefresh); err != nil {
		return domain.TokenPair{}, ErrInvalidRefresh
	}

	sess, err := s.Store.Sessions().GetSession(ctx, claims.SID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidRefresh
		}
		return domain.TokenPair{}, err
	}
	if sess.UserID != claims.Subject {
		return domain.TokenPair{}, ErrInvalidRefresh
	}

	user, err := s.Store.Users().GetUserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidRefresh
		}
		return domain.TokenPair{}, err
	}

	return s.issuePair(user, sess.ID)
}

// Logout deletes the session, revoking both tokens of the pair. Deleting an
// already-gone session is not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	err := s.Store.Sessions().DeleteSession(ctx, sessionID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	slogx.FromContext(ctx).Info("session revoked", slog.String("session_id", sessionID))
	return nil
}

// SessionAlive reports whether the session exists and belongs to the user.
// Wired into the authentication middleware so token claims are never
// trusted on their own.
func (s *AuthService) SessionAlive(ctx context.Context, sessionID, userID string) (bool, error) {
	sess, err := s.Store.Sessions().GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return sess.UserID == userID, nil
}

// GoogleConsentURL returns the provider URL the client should redirect to.
func (s *AuthService) GoogleConsentURL(state string) (string, error) {
	if s.Google == nil {
		return "", fmt.Errorf("%w: google sign-in is not configured", ErrValidation)
	}
	return s.Google.ConsentURL(state), nil
}

// LoginWithGoogle exchanges an OAuth authorization code for a verified
// profile and finds or creates the matching account. Accounts created this
// way get a random password; the user can set a real one via profile update.
func (s *AuthService) LoginWithGoogle(ctx context.Context, code string) (AuthResult, error) {
	if s.Google == nil {
		return AuthResult{}, fmt.Errorf("%w: google sign-in is not configured", ErrValidation)
	}
	if strings.TrimSpace(code) == "" {
		return AuthResult{}, fmt.Errorf("%w: missing authorization code", ErrValidation)
	}

	profile, err := s.Google.Exchange(ctx, code)
	if err != nil {
		slogx.FromContext(ctx).Warn("google code exchange failed", slog.String("error", err.Error()))
		return AuthResult{}, ErrInvalidCredentials
	}

	email := normalizeEmail(profile.Email)
	if err := validateEmail(email); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		// Existing account; nothing to link beyond logging in.
	case errors.Is(err, store.ErrNotFound):
		user, err = s.createGoogleUser(ctx, profile, email)
		if err != nil {
			return AuthResult{}, err
		}
	default:
		return AuthResult{}, err
	}

	return s.startSession(ctx, user)
}

func (s *AuthService) createGoogleUser(ctx context.Context, profile GoogleProfile, email string) (domain.User, error) {
	placeholder, err := cryptox.GeneratePassword()
	if err != nil {
		return domain.User{}, err
	}
	hash, err := cryptox.HashPassword(placeholder)
	if err != nil {
		return domain.User{}, err
	}

	name := strings.TrimSpace(profile.Name)
	if name == "" {
		name = email[:strings.Index(email, "@")]
	}

	now := time.Now().UTC()
	googleID := profile.ID
	user := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		AvatarURL:    profile.Picture,
		Theme:        domain.ThemeDark,
		GoogleID:     &googleID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered via google", slog.String("user_id", user.ID))
	return user, nil
}

func (s *AuthService) startSession(ctx context.Context, user domain.User) (AuthResult, error) {
	sess := domain.Session{
		ID:        idx.New().String(),
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.Sessions().CreateSession(ctx, sess); err != nil {
		return AuthResult{}, err
	}

	pair, err := s.issuePair(user, sess.ID)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Tokens: pair}, nil
}

func (s *AuthService) issuePair(user domain.User, sessionID string) (domain.TokenPair, error) {
	now := time.Now().UTC()

	access, err := s.Signer.Sign(jwtx.NewClaims(
		user.ID, sessionID, jwtx.UseAccess, s.accessTTL(), s.Issuer, user.Name, now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	refresh, err := s.Signer.Sign(jwtx.NewClaims(
		user.ID, sessionID, jwtx.UseRefresh, s.refreshTTL(), s.Issuer, user.Name, now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    s.accessTTL(),
	}, nil
}

func (s *AuthService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *AuthService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: malformed email", ErrValidation)
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrValidation, maxNameLength)
	}
	return nil
}
