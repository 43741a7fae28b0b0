package sqlite

import (
	"context"
	"time"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/domain"
)

type columnsRepo struct {
	q dbtx
}

func (r *columnsRepo) CreateColumn(ctx context.Context, c domain.Column) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO columns (id, board_id, owner_id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.BoardID, c.OwnerID, c.Title, c.CreatedAt, c.UpdatedAt)
	return mapConstraint(err)
}

func (r *columnsRepo) GetColumn(ctx context.Context, id string) (domain.Column, error) {
	var c domain.Column
	err := r.q.QueryRowContext(ctx, `
		SELECT id, board_id, owner_id, title, created_at, updated_at
		FROM columns WHERE id = ?`, id).
		Scan(&c.ID, &c.BoardID, &c.OwnerID, &c.Title, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Column{}, mapNotFound(err)
	}
	return c, nil
}

func (r *columnsRepo) ListColumnsByBoard(ctx context.Context, boardID string) ([]domain.Column, error) {
	// ULIDs sort by creation time, so ordering by id preserves insertion
	// order.
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, board_id, owner_id, title, created_at, updated_at
		FROM columns WHERE board_id = ? ORDER BY id`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := []domain.Column{}
	for rows.Next() {
		var c domain.Column
		if err := rows.Scan(&c.ID, &c.BoardID, &c.OwnerID, &c.Title,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

func (r *columnsRepo) UpdateColumnTitle(ctx context.Context, id, title string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE columns SET title = ?, updated_at = ? WHERE id = ?`,
		title, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *columnsRepo) DeleteColumn(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM columns WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
