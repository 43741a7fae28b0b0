package store

import (
	"context"
	"errors"
	"time"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this. Sub-repositories keep concerns tidy and individually
// testable.
type Store interface {
	Users() Users
	Sessions() Sessions
	Boards() Boards
	Columns() Columns
	Cards() Cards
	Invitations() Invitations
	HelpRequests() HelpRequests

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped Store.
type Tx interface {
	Users() Users
	Sessions() Sessions
	Boards() Boards
	Columns() Columns
	Cards() Cards
	Invitations() Invitations
	HelpRequests() HelpRequests

	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login and registration conflict checks.
	// Emails are stored lowercased.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile mutates name and optionally the password hash.
	UpdateProfile(ctx context.Context, userID, name string, passwordHash *string) error

	// UpdateTheme sets the theme preference.
	UpdateTheme(ctx context.Context, userID string, theme domain.Theme) error

	// UpdateAvatarURL sets the avatar reference.
	UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error
}

type Sessions interface {
	// CreateSession records a new login session.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSession returns a session by id.
	GetSession(ctx context.Context, id string) (domain.Session, error)

	// DeleteSession removes a session, revoking every token bound to it.
	DeleteSession(ctx context.Context, id string) error

	// DeleteSessionsBefore drops sessions created before cutoff. Housekeeping:
	// no live token can reference a session older than the refresh TTL.
	DeleteSessionsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Boards interface {
	// CreateBoard inserts a board together with its collaborator set.
	CreateBoard(ctx context.Context, b domain.Board) error

	// GetBoard returns a board with its collaborator set populated.
	GetBoard(ctx context.Context, id string) (domain.Board, error)

	// ListBoardsForUser returns boards the user owns or collaborates on,
	// in creation order.
	ListBoardsForUser(ctx context.Context, userID string) ([]domain.Board, error)

	// UpdateBoard mutates title/background/icon and bumps updated_at.
	UpdateBoard(ctx context.Context, id, title, background, icon string) error

	// DeleteBoard removes the board; columns and cards cascade per schema.
	DeleteBoard(ctx context.Context, id string) error

	// AddCollaborator adds userID to the board's collaborator set.
	// Adding an existing collaborator is a no-op.
	AddCollaborator(ctx context.Context, boardID, userID string) error

	// RemoveCollaborator removes userID from the set; missing entries are a
	// no-op.
	RemoveCollaborator(ctx context.Context, boardID, userID string) error
}

type Columns interface {
	CreateColumn(ctx context.Context, c domain.Column) error
	GetColumn(ctx context.Context, id string) (domain.Column, error)

	// ListColumnsByBoard returns the board's columns in insertion order.
	ListColumnsByBoard(ctx context.Context, boardID string) ([]domain.Column, error)

	// UpdateColumnTitle is the only column mutation; everything else lives
	// on the cards.
	UpdateColumnTitle(ctx context.Context, id, title string) error

	// DeleteColumn removes the column; its cards cascade per schema.
	DeleteColumn(ctx context.Context, id string) error
}

type Cards interface {
	// CreateCard inserts a card together with its collaborator snapshots.
	CreateCard(ctx context.Context, c domain.Card) error

	// GetCard returns a card with collaborator snapshots populated.
	GetCard(ctx context.Context, id string) (domain.Card, error)

	// ListCardsByColumn returns a column's cards in insertion order.
	ListCardsByColumn(ctx context.Context, columnID string) ([]domain.Card, error)

	// ListCardsByBoard returns all cards of a board in insertion order,
	// collaborators populated. Used by the aggregate deep read to avoid a
	// query per column.
	ListCardsByBoard(ctx context.Context, boardID string) ([]domain.Card, error)

	// UpdateCard mutates title/description/priority/deadline and replaces
	// the collaborator snapshots.
	UpdateCard(ctx context.Context, c domain.Card) error

	// DeleteCard removes a card.
	DeleteCard(ctx context.Context, id string) error

	// MoveCard points the card at a new column and re-denormalizes its
	// board and owner references from that column.
	MoveCard(ctx context.Context, cardID, columnID, boardID, ownerID string) error
}

type Invitations interface {
	// CreateInvitation writes a new invitation record.
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// GetInvitation returns an invitation by id.
	GetInvitation(ctx context.Context, id string) (domain.Invitation, error)

	// UpdateInvitationStatus sets the status and bumps updated_at.
	UpdateInvitationStatus(ctx context.Context, id string, status domain.InvitationStatus) error

	// HasPendingInvitation reports whether a pending invitation already
	// exists for the (board, user) pair.
	HasPendingInvitation(ctx context.Context, boardID, userID string) (bool, error)

	// ListPendingByUser returns the user's pending invitations with board
	// summaries, newest first.
	ListPendingByUser(ctx context.Context, userID string) ([]domain.PendingInvitation, error)
}

type HelpRequests interface {
	// CreateHelpRequest persists a support message.
	CreateHelpRequest(ctx context.Context, hr domain.HelpRequest) error
}
