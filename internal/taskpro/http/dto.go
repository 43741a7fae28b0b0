package http

import (
	"time"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/domain"
)

// Response shapes. Field names follow the client's camelCase convention.

type userResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Theme     string `json:"theme"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		Theme:     string(u.Theme),
	}
}

type authResponse struct {
	User   userResponse     `json:"user"`
	Tokens domain.TokenPair `json:"tokens"`
}

type boardResponse struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"ownerId"`
	Title         string    `json:"title"`
	Background    string    `json:"background"`
	Icon          string    `json:"icon"`
	Collaborators []string  `json:"collaborators"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toBoardResponse(b domain.Board) boardResponse {
	collabs := b.Collaborators
	if collabs == nil {
		collabs = []string{}
	}
	return boardResponse{
		ID:            b.ID,
		OwnerID:       b.OwnerID,
		Title:         b.Title,
		Background:    b.Background,
		Icon:          b.Icon,
		Collaborators: collabs,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

type columnResponse struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"boardId"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toColumnResponse(c domain.Column) columnResponse {
	return columnResponse{
		ID:        c.ID,
		BoardID:   c.BoardID,
		OwnerID:   c.OwnerID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type cardResponse struct {
	ID            string                    `json:"id"`
	ColumnID      string                    `json:"columnId"`
	BoardID       string                    `json:"boardId"`
	OwnerID       string                    `json:"ownerId"`
	Title         string                    `json:"title"`
	Description   string                    `json:"description"`
	Priority      string                    `json:"priority"`
	PriorityColor string                    `json:"priorityColor"`
	Deadline      *time.Time                `json:"deadline,omitempty"`
	Collaborators []domain.CardCollaborator `json:"collaborators"`
	CreatedAt     time.Time                 `json:"createdAt"`
	UpdatedAt     time.Time                 `json:"updatedAt"`
}

func toCardResponse(c domain.Card) cardResponse {
	collabs := c.Collaborators
	if collabs == nil {
		collabs = []domain.CardCollaborator{}
	}
	return cardResponse{
		ID:            c.ID,
		ColumnID:      c.ColumnID,
		BoardID:       c.BoardID,
		OwnerID:       c.OwnerID,
		Title:         c.Title,
		Description:   c.Description,
		Priority:      string(c.Priority),
		PriorityColor: c.Priority.Color(),
		Deadline:      c.Deadline,
		Collaborators: collabs,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

type columnTreeResponse struct {
	columnResponse
	Cards []cardResponse `json:"cards"`
}

type boardTreeResponse struct {
	boardResponse
	Columns []columnTreeResponse `json:"columns"`
}

func toBoardTreeResponse(t domain.BoardTree) boardTreeResponse {
	resp := boardTreeResponse{
		boardResponse: toBoardResponse(t.Board),
		Columns:       make([]columnTreeResponse, 0, len(t.Columns)),
	}
	for _, col := range t.Columns {
		cards := make([]cardResponse, 0, len(col.Cards))
		for _, c := range col.Cards {
			cards = append(cards, toCardResponse(c))
		}
		resp.Columns = append(resp.Columns, columnTreeResponse{
			columnResponse: toColumnResponse(col.Column),
			Cards:          cards,
		})
	}
	return resp
}

type invitationResponse struct {
	ID        string               `json:"id"`
	BoardID   string               `json:"boardId"`
	UserID    string               `json:"userId"`
	Status    string               `json:"status"`
	Board     *domain.BoardSummary `json:"board,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

func toInvitationResponse(inv domain.Invitation) invitationResponse {
	return invitationResponse{
		ID:        inv.ID,
		BoardID:   inv.BoardID,
		UserID:    inv.UserID,
		Status:    string(inv.Status),
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}

func toPendingInvitationResponse(p domain.PendingInvitation) invitationResponse {
	resp := toInvitationResponse(p.Invitation)
	board := p.Board
	resp.Board = &board
	return resp
}
