package domain

import "time"

// Theme is the UI colour theme a user has picked.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeViolet Theme = "violet"
	ThemeDark   Theme = "dark"
)

// ValidTheme reports whether t is one of the supported themes.
func ValidTheme(t Theme) bool {
	switch t {
	case ThemeLight, ThemeViolet, ThemeDark:
		return true
	}
	return false
}

type User struct {
	ID           string
	Name         string
	Email        string // unique, lowercased
	PasswordHash string // argon2id encoded
	AvatarURL    string
	Theme        Theme
	GoogleID     *string // set when the account is linked to Google sign-in
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Summary is the display-safe projection of a user. Raw user records (with
// credential material) never leave the service layer.
type UserSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL}
}
