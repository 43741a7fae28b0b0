package service

import (
	"context"
	"strings"
	"time"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/domain"
	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/store"
	"github.com/NituAlexandru/TaskPro-backend/pkg/idx"
)

// ColumnService manages the columns of a board. Column owner always mirrors
// the board owner; it is never the creating collaborator.
type ColumnService struct {
	Store store.Store
}

// CreateColumn appends a new column to the board.
func (s *ColumnService) CreateColumn(ctx context.Context, userID, boardID, title string) (domain.Column, error) {
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return domain.Column{}, err
	}

	b, err := boardForMember(ctx, s.Store.Boards(), boardID, userID)
	if err != nil {
		return domain.Column{}, err
	}

	now := time.Now().UTC()
	col := domain.Column{
		ID:        idx.New().String(),
		BoardID:   b.ID,
		OwnerID:   b.OwnerID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Columns().CreateColumn(ctx, col); err != nil {
		return domain.Column{}, err
	}
	return col, nil
}

// ListColumns returns the board's columns in insertion order.
func (s *ColumnService) ListColumns(ctx context.Context, userID, boardID string) ([]domain.Column, error) {
	if _, err := boardForMember(ctx, s.Store.Boards(), boardID, userID); err != nil {
		return nil, err
	}
	return s.Store.Columns().ListColumnsByBoard(ctx, boardID)
}

// RenameColumn changes the column title.
func (s *ColumnService) RenameColumn(ctx context.Context, userID, columnID, title string) (domain.Column, error) {
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return domain.Column{}, err
	}

	col, _, err := columnForMember(ctx, s.Store, columnID, userID)
	if err != nil {
		return domain.Column{}, err
	}

	if err := s.Store.Columns().UpdateColumnTitle(ctx, col.ID, title); err != nil {
		return domain.Column{}, err
	}
	col.Title = title
	col.UpdatedAt = time.Now().UTC()
	return col, nil
}

// DeleteColumn removes the column and, through schema cascades, its cards.
func (s *ColumnService) DeleteColumn(ctx context.Context, userID, columnID string) error {
	col, _, err := columnForMember(ctx, s.Store, columnID, userID)
	if err != nil {
		return err
	}
	return s.Store.Columns().DeleteColumn(ctx, col.ID)
}
