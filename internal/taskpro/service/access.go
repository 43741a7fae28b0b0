package service

import (
	"context"
	"errors"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/domain"
	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/store"
)

// boardForMember loads a board and enforces owner-or-collaborator access.
// A valid session is not enough to touch someone else's board.
func boardForMember(ctx context.Context, boards store.Boards, boardID, userID string) (domain.Board, error) {
	b, err := boards.GetBoard(ctx, boardID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Board{}, ErrNotFound
		}
		return domain.Board{}, err
	}
	if !b.IsMember(userID) {
		return domain.Board{}, ErrForbidden
	}
	return b, nil
}

// boardForOwner loads a board and enforces owner-only access.
func boardForOwner(ctx context.Context, boards store.Boards, boardID, userID string) (domain.Board, error) {
	b, err := boards.GetBoard(ctx, boardID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Board{}, ErrNotFound
		}
		return domain.Board{}, err
	}
	if b.OwnerID != userID {
		return domain.Board{}, ErrForbidden
	}
	return b, nil
}

// columnForMember loads a column and enforces membership on its board.
func columnForMember(ctx context.Context, st store.Store, columnID, userID string) (domain.Column, domain.Board, error) {
	col, err := st.Columns().GetColumn(ctx, columnID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Column{}, domain.Board{}, ErrNotFound
		}
		return domain.Column{}, domain.Board{}, err
	}
	b, err := boardForMember(ctx, st.Boards(), col.BoardID, userID)
	if err != nil {
		return domain.Column{}, domain.Board{}, err
	}
	return col, b, nil
}

// cardForMember loads a card and enforces membership on its board.
func cardForMember(ctx context.Context, st store.Store, cardID, userID string) (domain.Card, error) {
	c, err := st.Cards().GetCard(ctx, cardID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Card{}, ErrNotFound
		}
		return domain.Card{}, err
	}
	if _, err := boardForMember(ctx, st.Boards(), c.BoardID, userID); err != nil {
		return domain.Card{}, err
	}
	return c, nil
}
