package domain

import "time"

// HelpRequest is a persisted support message. Outbound email delivery is an
// external concern; the record itself is the durable part.
type HelpRequest struct {
	ID        string
	UserID    string
	Email     string
	Comment   string
	CreatedAt time.Time
}
