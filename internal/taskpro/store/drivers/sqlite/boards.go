package sqlite

import (
	"context"
	"time"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/domain"
)

type boardsRepo struct {
	q dbtx
}

func (r *boardsRepo) CreateBoard(ctx context.Context, b domain.Board) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO boards (id, owner_id, title, background, icon, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.OwnerID, b.Title, b.Background, b.Icon, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return mapConstraint(err)
	}
	for _, userID := range b.Collaborators {
		if err := r.AddCollaborator(ctx, b.ID, userID); err != nil {
			return err
		}
	}
	return nil
}

func (r *boardsRepo) GetBoard(ctx context.Context, id string) (domain.Board, error) {
	var b domain.Board
	err := r.q.QueryRowContext(ctx, `
		SELECT id, owner_id, title, background, icon, created_at, updated_at
		FROM boards WHERE id = ?`, id).
		Scan(&b.ID, &b.OwnerID, &b.Title, &b.Background, &b.Icon, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return domain.Board{}, mapNotFound(err)
	}

	collabs, err := r.listCollaborators(ctx, id)
	if err != nil {
		return domain.Board{}, err
	}
	b.Collaborators = collabs
	return b, nil
}

func (r *boardsRepo) ListBoardsForUser(ctx context.Context, userID string) ([]domain.Board, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, owner_id, title, background, icon, created_at, updated_at
		FROM boards
		WHERE owner_id = ?
		   OR id IN (SELECT board_id FROM board_collaborators WHERE user_id = ?)
		ORDER BY id`, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := []domain.Board{}
	for rows.Next() {
		var b domain.Board
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Title, &b.Background, &b.Icon,
			&b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range boards {
		collabs, err := r.listCollaborators(ctx, boards[i].ID)
		if err != nil {
			return nil, err
		}
		boards[i].Collaborators = collabs
	}
	return boards, nil
}

func (r *boardsRepo) UpdateBoard(ctx context.Context, id, title, background, icon string) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE boards SET title = ?, background = ?, icon = ?, updated_at = ?
		WHERE id = ?`,
		title, background, icon, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *boardsRepo) DeleteBoard(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *boardsRepo) AddCollaborator(ctx context.Context, boardID, userID string) error {
	// OR IGNORE makes repeated adds a no-op.
	_, err := r.q.ExecContext(ctx,
		`INSERT OR IGNORE INTO board_collaborators (board_id, user_id) VALUES (?, ?)`,
		boardID, userID)
	return err
}

func (r *boardsRepo) RemoveCollaborator(ctx context.Context, boardID, userID string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM board_collaborators WHERE board_id = ? AND user_id = ?`,
		boardID, userID)
	return err
}

func (r *boardsRepo) listCollaborators(ctx context.Context, boardID string) ([]string, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT user_id FROM board_collaborators WHERE board_id = ? ORDER BY user_id`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
