package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/domain"
	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/store"
	"github.com/NituAlexandru/TaskPro-backend/pkg/idx"
	"github.com/NituAlexandru/TaskPro-backend/pkg/slogx"
)

// InvitationService runs the board-sharing workflow. Invitations are
// durable records: accepting or declining resolves them in place, and
// resolved invitations stay around as an audit trail.
type InvitationService struct {
	Store store.Store
}

// Invite creates a pending invitation for the user with the given email.
// Any board member may invite. While a pending invitation for the same
// (board, user) pair exists, re-inviting is a conflict; resolved
// invitations do not block a fresh one.
func (s *InvitationService) Invite(ctx context.Context, inviterID, boardID, inviteeEmail string) (domain.Invitation, error) {
	b, err := boardForMember(ctx, s.Store.Boards(), boardID, inviterID)
	if err != nil {
		return domain.Invitation{}, err
	}

	inviteeEmail = normalizeEmail(inviteeEmail)
	invitee, err := s.Store.Users().GetUserByEmail(ctx, inviteeEmail)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, fmt.Errorf("%w: no account for that email", ErrNotFound)
		}
		return domain.Invitation{}, err
	}

	// The owner cannot be invited to their own board. Current collaborators
	// may be re-invited; declining that invitation revokes their access.
	if b.OwnerID == invitee.ID {
		return domain.Invitation{}, fmt.Errorf("%w: cannot invite the board owner", ErrValidation)
	}

	var inv domain.Invitation
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		pending, err := tx.Invitations().HasPendingInvitation(ctx, b.ID, invitee.ID)
		if err != nil {
			return err
		}
		if pending {
			return ErrInviteExists
		}

		now := time.Now().UTC()
		inv = domain.Invitation{
			ID:        idx.New().String(),
			BoardID:   b.ID,
			UserID:    invitee.ID,
			Status:    domain.InvitationPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.Invitations().CreateInvitation(ctx, inv)
	})
	if err != nil {
		return domain.Invitation{}, err
	}

	slogx.FromContext(ctx).Info("invitation created",
		slog.String("invitation_id", inv.ID),
		slog.String("board_id", b.ID),
		slog.String("invitee_id", invitee.ID))
	return inv, nil
}

// Accept resolves a pending invitation and adds the invitee to the board's
// collaborator set in the same transaction.
func (s *InvitationService) Accept(ctx context.Context, userID, invitationID string) (domain.Invitation, error) {
	return s.resolve(ctx, userID, invitationID, domain.InvitationAccepted)
}

// Decline resolves a pending invitation and removes the invitee from the
// board's collaborator set, revoking access granted by an earlier accept.
func (s *InvitationService) Decline(ctx context.Context, userID, invitationID string) (domain.Invitation, error) {
	return s.resolve(ctx, userID, invitationID, domain.InvitationDeclined)
}

func (s *InvitationService) resolve(ctx context.Context, userID, invitationID string, status domain.InvitationStatus) (domain.Invitation, error) {
	var inv domain.Invitation

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		inv, err = tx.Invitations().GetInvitation(ctx, invitationID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}

		// Only the invitee decides.
		if inv.UserID != userID {
			return ErrForbidden
		}
		if inv.Status.Terminal() {
			return ErrInviteResolved
		}

		if err := tx.Invitations().UpdateInvitationStatus(ctx, inv.ID, status); err != nil {
			return err
		}
		switch status {
		case domain.InvitationAccepted:
			if err := tx.Boards().AddCollaborator(ctx, inv.BoardID, inv.UserID); err != nil {
				return err
			}
		case domain.InvitationDeclined:
			// Declining also revokes any access the invitee already had;
			// removing a non-member is a no-op.
			if err := tx.Boards().RemoveCollaborator(ctx, inv.BoardID, inv.UserID); err != nil {
				return err
			}
		}

		inv.Status = status
		inv.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return domain.Invitation{}, err
	}

	slogx.FromContext(ctx).Info("invitation resolved",
		slog.String("invitation_id", inv.ID),
		slog.String("status", string(inv.Status)))
	return inv, nil
}

// ListPending returns the caller's pending invitations, newest first, each
// with a summary of the inviting board.
func (s *InvitationService) ListPending(ctx context.Context, userID string) ([]domain.PendingInvitation, error) {
	return s.Store.Invitations().ListPendingByUser(ctx, userID)
}
