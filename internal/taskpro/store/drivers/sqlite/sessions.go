package sqlite

import (
	"context"
	"time"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/domain"
)

type sessionsRepo struct {
	q dbtx
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, created_at) VALUES (?, ?, ?)`,
		s.ID, s.UserID, s.CreatedAt)
	return mapConstraint(err)
}

func (r *sessionsRepo) GetSession(ctx context.Context, id string) (domain.Session, error) {
	var s domain.Session
	err := r.q.QueryRowContext(ctx,
		`SELECT id, user_id, created_at FROM sessions WHERE id = ?`, id).
		Scan(&s.ID, &s.UserID, &s.CreatedAt)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	return s, nil
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *sessionsRepo) DeleteSessionsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM sessions WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
