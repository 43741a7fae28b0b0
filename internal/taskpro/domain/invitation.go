package domain

import "time"

// InvitationStatus is the invitation state machine: pending is the initial
// state, accepted and declined are terminal. There is no transition out of a
// terminal state; re-inviting creates a fresh record.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// Terminal reports whether the status permits no further transitions.
func (s InvitationStatus) Terminal() bool {
	return s == InvitationAccepted || s == InvitationDeclined
}

// Invitation asks a user to become a collaborator on a board. Invitations
// are never deleted; resolved ones remain as a durable audit record of the
// decision.
type Invitation struct {
	ID        string
	BoardID   string
	UserID    string // invitee
	Status    InvitationStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PendingInvitation is an invitation resolved with its board's summary, as
// returned by the pending-invitations listing.
type PendingInvitation struct {
	Invitation
	Board BoardSummary
}
