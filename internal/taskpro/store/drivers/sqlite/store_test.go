package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/domain"
	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/store"
	"github.com/NituAlexandru/TaskPro-backend/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedUser(t *testing.T, s *Store, name, email string) domain.User {
	t.Helper()

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: "$argon2id$fake",
		Theme:        domain.ThemeDark,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func seedBoard(t *testing.T, s *Store, ownerID, title string) domain.Board {
	t.Helper()

	now := time.Now().UTC()
	b := domain.Board{
		ID:         idx.New().String(),
		OwnerID:    ownerID,
		Title:      title,
		Background: domain.BackgroundNone,
		Icon:       domain.Icons[0],
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, s.Boards().CreateBoard(context.Background(), b))
	return b
}

func seedColumn(t *testing.T, s *Store, b domain.Board, title string) domain.Column {
	t.Helper()

	now := time.Now().UTC()
	c := domain.Column{
		ID:        idx.New().String(),
		BoardID:   b.ID,
		OwnerID:   b.OwnerID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.Columns().CreateColumn(context.Background(), c))
	return c
}

func seedCard(t *testing.T, s *Store, col domain.Column, title string) domain.Card {
	t.Helper()

	now := time.Now().UTC()
	c := domain.Card{
		ID:        idx.New().String(),
		ColumnID:  col.ID,
		BoardID:   col.BoardID,
		OwnerID:   col.OwnerID,
		Title:     title,
		Priority:  domain.PriorityWithout,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.Cards().CreateCard(context.Background(), c))
	return c
}

func TestUsersRepo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	t.Run("duplicate email rejected", func(t *testing.T) {
		seedUser(t, s, "Alice", "alice@example.com")

		dup := domain.User{
			ID: idx.New().String(), Name: "Other", Email: "alice@example.com",
			PasswordHash: "x", Theme: domain.ThemeDark,
			CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
		}
		err := s.Users().CreateUser(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("lookup by email", func(t *testing.T) {
		u := seedUser(t, s, "Bob", "bob@example.com")

		got, err := s.Users().GetUserByEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)

		_, err = s.Users().GetUserByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("profile update", func(t *testing.T) {
		u := seedUser(t, s, "Carol", "carol@example.com")

		newHash := "$argon2id$other"
		require.NoError(t, s.Users().UpdateProfile(ctx, u.ID, "Caroline", &newHash))

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "Caroline", got.Name)
		require.Equal(t, newHash, got.PasswordHash)
	})

	t.Run("update of missing user", func(t *testing.T) {
		err := s.Users().UpdateTheme(ctx, "missing", domain.ThemeLight)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestBoardCollaborators(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := seedUser(t, s, "Owner", "owner@example.com")
	collab := seedUser(t, s, "Collab", "collab@example.com")
	b := seedBoard(t, s, owner.ID, "Project X")

	t.Run("add is idempotent", func(t *testing.T) {
		require.NoError(t, s.Boards().AddCollaborator(ctx, b.ID, collab.ID))
		require.NoError(t, s.Boards().AddCollaborator(ctx, b.ID, collab.ID))

		got, err := s.Boards().GetBoard(ctx, b.ID)
		require.NoError(t, err)
		require.Equal(t, []string{collab.ID}, got.Collaborators)
	})

	t.Run("collaborator sees board in listing", func(t *testing.T) {
		boards, err := s.Boards().ListBoardsForUser(ctx, collab.ID)
		require.NoError(t, err)
		require.Len(t, boards, 1)
		require.Equal(t, b.ID, boards[0].ID)
	})

	t.Run("remove twice is a no-op", func(t *testing.T) {
		require.NoError(t, s.Boards().RemoveCollaborator(ctx, b.ID, collab.ID))
		require.NoError(t, s.Boards().RemoveCollaborator(ctx, b.ID, collab.ID))

		boards, err := s.Boards().ListBoardsForUser(ctx, collab.ID)
		require.NoError(t, err)
		require.Empty(t, boards)
	})
}

func TestCascadeDeletes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := seedUser(t, s, "Owner", "owner@example.com")

	t.Run("deleting a board removes its columns and cards", func(t *testing.T) {
		b := seedBoard(t, s, owner.ID, "Doomed")
		col := seedColumn(t, s, b, "To Do")
		card := seedCard(t, s, col, "Task")

		require.NoError(t, s.Boards().DeleteBoard(ctx, b.ID))

		_, err := s.Columns().GetColumn(ctx, col.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.Cards().GetCard(ctx, card.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("deleting a column removes its cards only", func(t *testing.T) {
		b := seedBoard(t, s, owner.ID, "Kept")
		colA := seedColumn(t, s, b, "A")
		colB := seedColumn(t, s, b, "B")
		cardA := seedCard(t, s, colA, "in A")
		cardB := seedCard(t, s, colB, "in B")

		require.NoError(t, s.Columns().DeleteColumn(ctx, colA.ID))

		_, err := s.Cards().GetCard(ctx, cardA.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		got, err := s.Cards().GetCard(ctx, cardB.ID)
		require.NoError(t, err)
		require.Equal(t, cardB.ID, got.ID)
	})
}

func TestCardsRepo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := seedUser(t, s, "Owner", "owner@example.com")
	b := seedBoard(t, s, owner.ID, "Board")
	colA := seedColumn(t, s, b, "To Do")
	colB := seedColumn(t, s, b, "Done")

	t.Run("insertion order within a column", func(t *testing.T) {
		first := seedCard(t, s, colA, "first")
		second := seedCard(t, s, colA, "second")

		cards, err := s.Cards().ListCardsByColumn(ctx, colA.ID)
		require.NoError(t, err)
		require.Len(t, cards, 2)
		require.Equal(t, first.ID, cards[0].ID)
		require.Equal(t, second.ID, cards[1].ID)
	})

	t.Run("move re-points column and denormalized refs", func(t *testing.T) {
		card := seedCard(t, s, colA, "mover")

		require.NoError(t, s.Cards().MoveCard(ctx, card.ID, colB.ID, b.ID, owner.ID))

		got, err := s.Cards().GetCard(ctx, card.ID)
		require.NoError(t, err)
		require.Equal(t, colB.ID, got.ColumnID)
		require.Equal(t, b.ID, got.BoardID)
	})

	t.Run("update replaces collaborator snapshots", func(t *testing.T) {
		card := seedCard(t, s, colA, "assigned")
		card.Collaborators = []domain.CardCollaborator{
			{UserID: "u1", Name: "One"},
			{UserID: "u2", Name: "Two"},
		}
		require.NoError(t, s.Cards().UpdateCard(ctx, card))

		card.Collaborators = []domain.CardCollaborator{{UserID: "u2", Name: "Two"}}
		require.NoError(t, s.Cards().UpdateCard(ctx, card))

		got, err := s.Cards().GetCard(ctx, card.ID)
		require.NoError(t, err)
		require.Len(t, got.Collaborators, 1)
		require.Equal(t, "u2", got.Collaborators[0].UserID)
	})

	t.Run("deadline round-trip", func(t *testing.T) {
		deadline := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
		card := seedCard(t, s, colA, "due")
		card.Deadline = &deadline
		require.NoError(t, s.Cards().UpdateCard(ctx, card))

		got, err := s.Cards().GetCard(ctx, card.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Deadline)
		require.True(t, deadline.Equal(*got.Deadline))
	})
}

func TestInvitationsRepo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := seedUser(t, s, "Owner", "owner@example.com")
	invitee := seedUser(t, s, "Invitee", "invitee@example.com")
	b := seedBoard(t, s, owner.ID, "Shared")

	now := time.Now().UTC()
	inv := domain.Invitation{
		ID:        idx.New().String(),
		BoardID:   b.ID,
		UserID:    invitee.ID,
		Status:    domain.InvitationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.Invitations().CreateInvitation(ctx, inv))

	t.Run("pending lookup", func(t *testing.T) {
		ok, err := s.Invitations().HasPendingInvitation(ctx, b.ID, invitee.ID)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = s.Invitations().HasPendingInvitation(ctx, b.ID, owner.ID)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("listing includes board summary", func(t *testing.T) {
		pending, err := s.Invitations().ListPendingByUser(ctx, invitee.ID)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		require.Equal(t, inv.ID, pending[0].ID)
		require.Equal(t, "Shared", pending[0].Board.Title)
		require.Equal(t, owner.ID, pending[0].Board.OwnerID)
	})

	t.Run("resolving removes it from the pending list", func(t *testing.T) {
		require.NoError(t, s.Invitations().UpdateInvitationStatus(ctx, inv.ID, domain.InvitationAccepted))

		pending, err := s.Invitations().ListPendingByUser(ctx, invitee.ID)
		require.NoError(t, err)
		require.Empty(t, pending)

		got, err := s.Invitations().GetInvitation(ctx, inv.ID)
		require.NoError(t, err)
		require.Equal(t, domain.InvitationAccepted, got.Status)
	})
}

func TestSessionsRepo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "User", "user@example.com")

	old := domain.Session{ID: idx.New().String(), UserID: u.ID, CreatedAt: time.Now().UTC().Add(-10 * 24 * time.Hour)}
	fresh := domain.Session{ID: idx.New().String(), UserID: u.ID, CreatedAt: time.Now().UTC()}
	require.NoError(t, s.Sessions().CreateSession(ctx, old))
	require.NoError(t, s.Sessions().CreateSession(ctx, fresh))

	t.Run("sweep drops only expired sessions", func(t *testing.T) {
		n, err := s.Sessions().DeleteSessionsBefore(ctx, time.Now().UTC().Add(-7*24*time.Hour))
		require.NoError(t, err)
		require.EqualValues(t, 1, n)

		_, err = s.Sessions().GetSession(ctx, old.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Sessions().GetSession(ctx, fresh.ID)
		require.NoError(t, err)
	})

	t.Run("delete revokes the session", func(t *testing.T) {
		require.NoError(t, s.Sessions().DeleteSession(ctx, fresh.ID))
		_, err := s.Sessions().GetSession(ctx, fresh.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestWithTx(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "User", "user@example.com")

	t.Run("rollback on error", func(t *testing.T) {
		boardID := idx.New().String()
		err := s.WithTx(ctx, func(tx store.Tx) error {
			now := time.Now().UTC()
			if err := tx.Boards().CreateBoard(ctx, domain.Board{
				ID: boardID, OwnerID: u.ID, Title: "tx board",
				Background: domain.BackgroundNone, Icon: domain.Icons[0],
				CreatedAt: now, UpdatedAt: now,
			}); err != nil {
				return err
			}
			return context.Canceled
		})
		require.ErrorIs(t, err, context.Canceled)

		_, err = s.Boards().GetBoard(ctx, boardID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("commit on success", func(t *testing.T) {
		boardID := idx.New().String()
		err := s.WithTx(ctx, func(tx store.Tx) error {
			now := time.Now().UTC()
			return tx.Boards().CreateBoard(ctx, domain.Board{
				ID: boardID, OwnerID: u.ID, Title: "kept board",
				Background: domain.BackgroundNone, Icon: domain.Icons[0],
				CreatedAt: now, UpdatedAt: now,
			})
		})
		require.NoError(t, err)

		got, err := s.Boards().GetBoard(ctx, boardID)
		require.NoError(t, err)
		require.Equal(t, "kept board", got.Title)
	})
}
