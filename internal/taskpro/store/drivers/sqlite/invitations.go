package sqlite

import (
	"context"
	"time"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/domain"
)

type invitationsRepo struct {
	q dbtx
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO invitations (id, board_id, user_id, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.BoardID, inv.UserID, inv.Status, inv.CreatedAt, inv.UpdatedAt)
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitation(ctx context.Context, id string) (domain.Invitation, error) {
	var inv domain.Invitation
	err := r.q.QueryRowContext(ctx, `
		SELECT id, board_id, user_id, status, created_at, updated_at
		FROM invitations WHERE id = ?`, id).
		Scan(&inv.ID, &inv.BoardID, &inv.UserID, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitationsRepo) UpdateInvitationStatus(ctx context.Context, id string, status domain.InvitationStatus) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE invitations SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *invitationsRepo) HasPendingInvitation(ctx context.Context, boardID, userID string) (bool, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM invitations
		WHERE board_id = ? AND user_id = ? AND status = ?`,
		boardID, userID, domain.InvitationPending).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *invitationsRepo) ListPendingByUser(ctx context.Context, userID string) ([]domain.PendingInvitation, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT i.id, i.board_id, i.user_id, i.status, i.created_at, i.updated_at,
		       b.id, b.title, b.background, b.icon, b.owner_id
		FROM invitations i
		JOIN boards b ON b.id = i.board_id
		WHERE i.user_id = ? AND i.status = ?
		ORDER BY i.id DESC`,
		userID, domain.InvitationPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pending := []domain.PendingInvitation{}
	for rows.Next() {
		var p domain.PendingInvitation
		if err := rows.Scan(
			&p.ID, &p.BoardID, &p.UserID, &p.Status, &p.CreatedAt, &p.UpdatedAt,
			&p.Board.ID, &p.Board.Title, &p.Board.Background, &p.Board.Icon, &p.Board.OwnerID,
		); err != nil {
			return nil, err
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}
