package sqlite

import (
	"context"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/domain"
)

type helpRequestsRepo struct {
	q dbtx
}

func (r *helpRequestsRepo) CreateHelpRequest(ctx context.Context, hr domain.HelpRequest) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO help_requests (id, user_id, email, comment, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		hr.ID, hr.UserID, hr.Email, hr.Comment, hr.CreatedAt)
	return mapConstraint(err)
}
