package domain

import "time"

// TokenPair is what the auth endpoints return: a short-lived access token
// and a longer-lived refresh token, both JWTs carrying {userId, sessionId}.
type TokenPair struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	TokenType    string        `json:"tokenType,omitempty"` // "Bearer"
	ExpiresIn    time.Duration `json:"expiresIn"`           // access token lifetime
}
