package domain

import "time"

// Board backgrounds form a closed enumeration matching the assets shipped
// with the client. "no-background" is the default.
const BackgroundNone = "no-background"

var Backgrounds = []string{
	BackgroundNone,
	"flowers", "forest", "mountains", "sea", "sakura", "moon",
	"leaves", "clouds", "night-sky", "desert", "balloons",
	"stars", "aurora", "canyon", "baloon-trip",
}

// Board icons form a closed enumeration. The first entry is the default.
var Icons = []string{
	"icon-project", "icon-star", "icon-loading", "icon-puzzle",
	"icon-container", "icon-lightning", "icon-colors", "icon-hexagon",
}

// ValidBackground reports whether bg names a known board background.
func ValidBackground(bg string) bool {
	for _, b := range Backgrounds {
		if b == bg {
			return true
		}
	}
	return false
}

// ValidIcon reports whether icon names a known board icon.
func ValidIcon(icon string) bool {
	for _, i := range Icons {
		if i == icon {
			return true
		}
	}
	return false
}

// Board is the top-level task container. The owner is the creator and never
// changes; collaborators get access through the invitation workflow.
type Board struct {
	ID            string
	OwnerID       string
	Title         string
	Background    string
	Icon          string
	Collaborators []string // user ids, unique, order-irrelevant
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasCollaborator reports whether userID is in the board's collaborator set.
func (b Board) HasCollaborator(userID string) bool {
	for _, id := range b.Collaborators {
		if id == userID {
			return true
		}
	}
	return false
}

// IsMember reports whether userID is the owner or a collaborator.
func (b Board) IsMember(userID string) bool {
	return b.OwnerID == userID || b.HasCollaborator(userID)
}

// BoardSummary is the lightweight projection used in listings and
// invitation payloads.
type BoardSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Background string `json:"background,omitempty"`
	Icon       string `json:"icon,omitempty"`
	OwnerID    string `json:"ownerId"`
}

func (b Board) Summary() BoardSummary {
	return BoardSummary{
		ID:         b.ID,
		Title:      b.Title,
		Background: b.Background,
		Icon:       b.Icon,
		OwnerID:    b.OwnerID,
	}
}

// BoardTree is the deep read of a board: all columns in insertion order,
// each with its cards populated.
type BoardTree struct {
	Board
	Columns []ColumnTree
}

// ColumnTree is a column plus its cards in insertion order.
type ColumnTree struct {
	Column
	Cards []Card
}
