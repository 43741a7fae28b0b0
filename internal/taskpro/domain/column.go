package domain

import "time"

// Column is an ordered named bucket of cards within a board. OwnerID is
// denormalized from the parent board for query convenience and must always
// equal the board's owner.
type Column struct {
	ID        string
	BoardID   string
	OwnerID   string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
