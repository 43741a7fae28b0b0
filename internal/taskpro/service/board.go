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

const maxTitleLength = 128

// BoardService owns the board aggregate: boards, their columns, and the
// deep read that assembles the whole tree.
type BoardService struct {
	Store store.Store
}

// CreateBoard makes the caller the owner of a new empty board. Initial
// collaborators are optional and must name existing users; the usual path
// for adding collaborators is the invitation workflow.
func (s *BoardService) CreateBoard(ctx context.Context, userID, title, background, icon string, collaborators []string) (domain.Board, error) {
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return domain.Board{}, err
	}

	if background == "" {
		background = domain.BackgroundNone
	}
	if !domain.ValidBackground(background) {
		return domain.Board{}, fmt.Errorf("%w: unknown background %q", ErrValidation, background)
	}

	if icon == "" {
		icon = domain.Icons[0]
	}
	if !domain.ValidIcon(icon) {
		return domain.Board{}, fmt.Errorf("%w: unknown icon %q", ErrValidation, icon)
	}

	collabs, err := s.resolveCollaborators(ctx, userID, collaborators)
	if err != nil {
		return domain.Board{}, err
	}

	now := time.Now().UTC()
	b := domain.Board{
		ID:            idx.New().String(),
		OwnerID:       userID,
		Title:         title,
		Background:    background,
		Icon:          icon,
		Collaborators: collabs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Store.Boards().CreateBoard(ctx, b); err != nil {
		return domain.Board{}, err
	}

	slogx.FromContext(ctx).Info("board created",
		slog.String("board_id", b.ID), slog.String("owner_id", userID))
	return b, nil
}

// ListBoards returns boards the user owns or collaborates on.
func (s *BoardService) ListBoards(ctx context.Context, userID string) ([]domain.Board, error) {
	return s.Store.Boards().ListBoardsForUser(ctx, userID)
}

// GetBoardTree performs the aggregate deep read: the board, its columns in
// insertion order, and each column's cards. When minPriority is non-nil
// only cards at or above it are included; columns are never omitted, even
// when the filter empties them.
func (s *BoardService) GetBoardTree(ctx context.Context, userID, boardID string, minPriority *domain.Priority) (domain.BoardTree, error) {
	if minPriority != nil && !domain.ValidPriority(*minPriority) {
		return domain.BoardTree{}, fmt.Errorf("%w: unknown priority %q", ErrValidation, *minPriority)
	}

	b, err := boardForMember(ctx, s.Store.Boards(), boardID, userID)
	if err != nil {
		return domain.BoardTree{}, err
	}

	cols, err := s.Store.Columns().ListColumnsByBoard(ctx, boardID)
	if err != nil {
		return domain.BoardTree{}, err
	}

	// One query for all cards rather than one per column.
	cards, err := s.Store.Cards().ListCardsByBoard(ctx, boardID)
	if err != nil {
		return domain.BoardTree{}, err
	}

	byColumn := make(map[string][]domain.Card, len(cols))
	for _, c := range cards {
		if minPriority != nil && !c.Priority.AtLeast(*minPriority) {
			continue
		}
		byColumn[c.ColumnID] = append(byColumn[c.ColumnID], c)
	}

	tree := domain.BoardTree{Board: b, Columns: make([]domain.ColumnTree, 0, len(cols))}
	for _, col := range cols {
		cardsInCol := byColumn[col.ID]
		if cardsInCol == nil {
			cardsInCol = []domain.Card{}
		}
		tree.Columns = append(tree.Columns, domain.ColumnTree{Column: col, Cards: cardsInCol})
	}
	return tree, nil
}

// UpdateBoard mutates title, background, and icon. Nil fields keep their
// current value. Any member may update the board.
func (s *BoardService) UpdateBoard(ctx context.Context, userID, boardID string, title, background, icon *string) (domain.Board, error) {
	b, err := boardForMember(ctx, s.Store.Boards(), boardID, userID)
	if err != nil {
		return domain.Board{}, err
	}

	if title != nil {
		t := strings.TrimSpace(*title)
		if err := validateTitle(t); err != nil {
			return domain.Board{}, err
		}
		b.Title = t
	}
	if background != nil {
		if !domain.ValidBackground(*background) {
			return domain.Board{}, fmt.Errorf("%w: unknown background %q", ErrValidation, *background)
		}
		b.Background = *background
	}
	if icon != nil {
		if !domain.ValidIcon(*icon) {
			return domain.Board{}, fmt.Errorf("%w: unknown icon %q", ErrValidation, *icon)
		}
		b.Icon = *icon
	}

	if err := s.Store.Boards().UpdateBoard(ctx, b.ID, b.Title, b.Background, b.Icon); err != nil {
		return domain.Board{}, err
	}
	b.UpdatedAt = time.Now().UTC()
	return b, nil
}

// DeleteBoard removes the board and, through schema cascades, every column
// and card inside it. Owner-only; collaborators cannot delete a board that
// was shared with them.
func (s *BoardService) DeleteBoard(ctx context.Context, userID, boardID string) error {
	if _, err := boardForOwner(ctx, s.Store.Boards(), boardID, userID); err != nil {
		return err
	}
	if err := s.Store.Boards().DeleteBoard(ctx, boardID); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("board deleted", slog.String("board_id", boardID))
	return nil
}

// resolveCollaborators dedupes the requested user ids, drops the owner, and
// verifies each names an existing account.
func (s *BoardService) resolveCollaborators(ctx context.Context, ownerID string, userIDs []string) ([]string, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(userIDs))
	out := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if id == ownerID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		if _, err := s.Store.Users().GetUserByID(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown collaborator %q", ErrValidation, id)
			}
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func validateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(title) > maxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrValidation, maxTitleLength)
	}
	return nil
}
