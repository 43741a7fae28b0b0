package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/domain"
)

type usersRepo struct {
	q dbtx
}

const userColumns = `id, name, email, password_hash, avatar_url, theme, google_id, created_at, updated_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	var googleID sql.NullString
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.AvatarURL,
		&u.Theme, &googleID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.GoogleID = mapNullStringPtr(googleID)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, avatar_url, theme, google_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.AvatarURL, u.Theme,
		mapOptionalString(u.GoogleID), u.CreatedAt, u.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID, name string, passwordHash *string) error {
	now := time.Now().UTC()
	var res sql.Result
	var err error
	if passwordHash != nil {
		res, err = r.q.ExecContext(ctx,
			`UPDATE users SET name = ?, password_hash = ?, updated_at = ? WHERE id = ?`,
			name, *passwordHash, now, userID)
	} else {
		res, err = r.q.ExecContext(ctx,
			`UPDATE users SET name = ?, updated_at = ? WHERE id = ?`,
			name, now, userID)
	}
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) UpdateTheme(ctx context.Context, userID string, theme domain.Theme) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET theme = ?, updated_at = ? WHERE id = ?`,
		theme, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET avatar_url = ?, updated_at = ? WHERE id = ?`,
		avatarURL, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}
