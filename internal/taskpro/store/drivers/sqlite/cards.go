package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/domain"
)

type cardsRepo struct {
	q dbtx
}

const cardColumns = `id, column_id, board_id, owner_id, title, description, priority, deadline, created_at, updated_at`

func (r *cardsRepo) CreateCard(ctx context.Context, c domain.Card) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO cards (id, column_id, board_id, owner_id, title, description, priority, deadline, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.ColumnID, c.BoardID, c.OwnerID, c.Title, c.Description,
		c.Priority, mapOptionalTime(c.Deadline), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return mapConstraint(err)
	}
	return r.insertCollaborators(ctx, c.ID, c.Collaborators)
}

func (r *cardsRepo) GetCard(ctx context.Context, id string) (domain.Card, error) {
	var c domain.Card
	var deadline sql.NullTime
	err := r.q.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE id = ?`, id).
		Scan(&c.ID, &c.ColumnID, &c.BoardID, &c.OwnerID, &c.Title, &c.Description,
			&c.Priority, &deadline, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Card{}, mapNotFound(err)
	}
	c.Deadline = mapNullTimePtr(deadline)

	collabs, err := r.listCollaborators(ctx, id)
	if err != nil {
		return domain.Card{}, err
	}
	c.Collaborators = collabs
	return c, nil
}

func (r *cardsRepo) ListCardsByColumn(ctx context.Context, columnID string) ([]domain.Card, error) {
	return r.listCards(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE column_id = ? ORDER BY id`, columnID)
}

func (r *cardsRepo) ListCardsByBoard(ctx context.Context, boardID string) ([]domain.Card, error) {
	return r.listCards(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE board_id = ? ORDER BY id`, boardID)
}

func (r *cardsRepo) listCards(ctx context.Context, query string, arg any) ([]domain.Card, error) {
	rows, err := r.q.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []domain.Card{}
	for rows.Next() {
		var c domain.Card
		var deadline sql.NullTime
		if err := rows.Scan(&c.ID, &c.ColumnID, &c.BoardID, &c.OwnerID, &c.Title,
			&c.Description, &c.Priority, &deadline, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.Deadline = mapNullTimePtr(deadline)
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range cards {
		collabs, err := r.listCollaborators(ctx, cards[i].ID)
		if err != nil {
			return nil, err
		}
		cards[i].Collaborators = collabs
	}
	return cards, nil
}

func (r *cardsRepo) UpdateCard(ctx context.Context, c domain.Card) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE cards SET title = ?, description = ?, priority = ?, deadline = ?, updated_at = ?
		WHERE id = ?`,
		c.Title, c.Description, c.Priority, mapOptionalTime(c.Deadline),
		time.Now().UTC(), c.ID)
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}

	// Snapshots are replaced wholesale on update.
	if _, err := r.q.ExecContext(ctx,
		`DELETE FROM card_collaborators WHERE card_id = ?`, c.ID); err != nil {
		return err
	}
	return r.insertCollaborators(ctx, c.ID, c.Collaborators)
}

func (r *cardsRepo) DeleteCard(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *cardsRepo) MoveCard(ctx context.Context, cardID, columnID, boardID, ownerID string) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE cards SET column_id = ?, board_id = ?, owner_id = ?, updated_at = ?
		WHERE id = ?`,
		columnID, boardID, ownerID, time.Now().UTC(), cardID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *cardsRepo) insertCollaborators(ctx context.Context, cardID string, collabs []domain.CardCollaborator) error {
	for _, cc := range collabs {
		if _, err := r.q.ExecContext(ctx, `
			INSERT OR IGNORE INTO card_collaborators (card_id, user_id, name, avatar_url)
			VALUES (?, ?, ?, ?)`,
			cardID, cc.UserID, cc.Name, cc.AvatarURL); err != nil {
			return err
		}
	}
	return nil
}

func (r *cardsRepo) listCollaborators(ctx context.Context, cardID string) ([]domain.CardCollaborator, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT user_id, name, avatar_url FROM card_collaborators
		WHERE card_id = ? ORDER BY user_id`, cardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collabs []domain.CardCollaborator
	for rows.Next() {
		var cc domain.CardCollaborator
		if err := rows.Scan(&cc.UserID, &cc.Name, &cc.AvatarURL); err != nil {
			return nil, err
		}
		collabs = append(collabs, cc)
	}
	return collabs, rows.Err()
}
