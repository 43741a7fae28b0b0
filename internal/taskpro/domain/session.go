package domain

import "time"

// Session is the server-side record backing a bearer token pair. One session
// is created per login and survives token refreshes; logout deletes it,
// which revokes every token bound to it no matter how long the tokens would
// otherwise remain cryptographically valid.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
}
