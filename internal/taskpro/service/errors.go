package service

import "errors"

// Service-level sentinels. The HTTP layer maps these onto status codes; the
// store's sentinels never leak past this package.
var (
	ErrValidation         = errors.New("validation_failed")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
	ErrSessionRevoked     = errors.New("session_revoked")
	ErrEmailTaken         = errors.New("email_taken")
	ErrNotFound           = errors.New("not_found")
	ErrForbidden          = errors.New("forbidden")
	ErrInviteExists       = errors.New("invitation_pending")
	ErrInviteResolved     = errors.New("invitation_resolved")
)
