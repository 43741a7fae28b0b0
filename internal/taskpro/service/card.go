package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/domain"
	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/store"
	"github.com/NituAlexandru/TaskPro-backend/pkg/idx"
	"github.com/NituAlexandru/TaskPro-backend/pkg/slogx"
)

const maxDescriptionLength = 2048

// CardService manages cards, including moving them between columns and
// boards. A card's board and owner references are always re-derived from
// the column it sits in.
type CardService struct {
	Store store.Store
}

// CardParams carries the mutable card fields for create and update.
// Collaborators are user ids; they are snapshotted (id, name, avatar) at
// write time and do not track later profile changes.
type CardParams struct {
	Title         string
	Description   string
	Priority      domain.Priority
	Deadline      *time.Time
	Collaborators []string
}

func (p *CardParams) validate() error {
	p.Title = strings.TrimSpace(p.Title)
	if err := validateTitle(p.Title); err != nil {
		return err
	}
	if len(p.Description) > maxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrValidation, maxDescriptionLength)
	}
	if p.Priority == "" {
		p.Priority = domain.PriorityWithout
	}
	if !domain.ValidPriority(p.Priority) {
		return fmt.Errorf("%w: unknown priority %q", ErrValidation, p.Priority)
	}
	return nil
}

// CreateCard appends a card to the column.
func (s *CardService) CreateCard(ctx context.Context, userID, columnID string, params CardParams) (domain.Card, error) {
	if err := params.validate(); err != nil {
		return domain.Card{}, err
	}

	col, b, err := columnForMember(ctx, s.Store, columnID, userID)
	if err != nil {
		return domain.Card{}, err
	}

	snapshots, err := s.snapshotCollaborators(ctx, b, params.Collaborators)
	if err != nil {
		return domain.Card{}, err
	}

	now := time.Now().UTC()
	c := domain.Card{
		ID:            idx.New().String(),
		ColumnID:      col.ID,
		BoardID:       col.BoardID,
		OwnerID:       col.OwnerID,
		Title:         params.Title,
		Description:   params.Description,
		Priority:      params.Priority,
		Deadline:      params.Deadline,
		Collaborators: snapshots,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Store.Cards().CreateCard(ctx, c); err != nil {
		return domain.Card{}, err
	}
	return c, nil
}

// ListCards returns the column's cards in insertion order.
func (s *CardService) ListCards(ctx context.Context, userID, columnID string) ([]domain.Card, error) {
	col, _, err := columnForMember(ctx, s.Store, columnID, userID)
	if err != nil {
		return nil, err
	}
	return s.Store.Cards().ListCardsByColumn(ctx, col.ID)
}

// UpdateCard replaces the card's mutable fields and collaborator snapshots.
func (s *CardService) UpdateCard(ctx context.Context, userID, cardID string, params CardParams) (domain.Card, error) {
	if err := params.validate(); err != nil {
		return domain.Card{}, err
	}

	c, err := cardForMember(ctx, s.Store, cardID, userID)
	if err != nil {
		return domain.Card{}, err
	}

	b, err := boardForMember(ctx, s.Store.Boards(), c.BoardID, userID)
	if err != nil {
		return domain.Card{}, err
	}
	snapshots, err := s.snapshotCollaborators(ctx, b, params.Collaborators)
	if err != nil {
		return domain.Card{}, err
	}

	c.Title = params.Title
	c.Description = params.Description
	c.Priority = params.Priority
	c.Deadline = params.Deadline
	c.Collaborators = snapshots

	if err := s.Store.Cards().UpdateCard(ctx, c); err != nil {
		return domain.Card{}, err
	}
	c.UpdatedAt = time.Now().UTC()
	return c, nil
}

// DeleteCard removes a card.
func (s *CardService) DeleteCard(ctx context.Context, userID, cardID string) error {
	c, err := cardForMember(ctx, s.Store, cardID, userID)
	if err != nil {
		return err
	}
	return s.Store.Cards().DeleteCard(ctx, c.ID)
}

// MoveCard re-points the card at the destination column. Moves may cross
// boards; board and owner references are re-derived from the destination so
// they never go stale. The caller needs access to both boards.
func (s *CardService) MoveCard(ctx context.Context, userID, cardID, destColumnID string) (domain.Card, error) {
	c, err := cardForMember(ctx, s.Store, cardID, userID)
	if err != nil {
		return domain.Card{}, err
	}

	dest, _, err := columnForMember(ctx, s.Store, destColumnID, userID)
	if err != nil {
		return domain.Card{}, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Cards().MoveCard(ctx, c.ID, dest.ID, dest.BoardID, dest.OwnerID)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Card{}, ErrNotFound
		}
		return domain.Card{}, err
	}

	if c.BoardID != dest.BoardID {
		slogx.FromContext(ctx).Info("card moved across boards",
			slog.String("card_id", c.ID),
			slog.String("from_board", c.BoardID),
			slog.String("to_board", dest.BoardID))
	}

	c.ColumnID = dest.ID
	c.BoardID = dest.BoardID
	c.OwnerID = dest.OwnerID
	c.UpdatedAt = time.Now().UTC()
	return c, nil
}

// snapshotCollaborators resolves user ids into display snapshots. Only
// members of the card's board may be assigned.
func (s *CardService) snapshotCollaborators(ctx context.Context, b domain.Board, userIDs []string) ([]domain.CardCollaborator, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	snapshots := make([]domain.CardCollaborator, 0, len(userIDs))
	seen := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		if !b.IsMember(id) {
			return nil, fmt.Errorf("%w: user %s is not a member of the board", ErrValidation, id)
		}
		u, err := s.Store.Users().GetUserByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown user %s", ErrValidation, id)
			}
			return nil, err
		}
		snapshots = append(snapshots, domain.CardCollaborator{
			UserID:    u.ID,
			Name:      u.Name,
			AvatarURL: u.AvatarURL,
		})
	}
	return snapshots, nil
}
