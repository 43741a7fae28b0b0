package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/domain"
	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/service"
	"github.com/NituAlexandru/TaskPro-backend/pkg/httpx"
)

// CardHandler serves card operations, including moving cards between
// columns.
type CardHandler struct {
	CardService *service.CardService
}

type cardRequest struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Priority      string     `json:"priority"`
	Deadline      *time.Time `json:"deadline"`
	Collaborators []string   `json:"collaborators"`
}

func (req cardRequest) params() service.CardParams {
	return service.CardParams{
		Title:         req.Title,
		Description:   req.Description,
		Priority:      domain.Priority(req.Priority),
		Deadline:      req.Deadline,
		Collaborators: req.Collaborators,
	}
}

func (h *CardHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	columnID := r.PathValue("columnId")

	cards, err := h.CardService.ListCards(r.Context(), userID, columnID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := make([]cardResponse, 0, len(cards))
	for _, c := range cards {
		resp = append(resp, toCardResponse(c))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *CardHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	columnID := r.PathValue("columnId")

	var req cardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}

	c, err := h.CardService.CreateCard(r.Context(), userID, columnID, req.params())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toCardResponse(c))
}

func (h *CardHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	cardID := r.PathValue("cardId")

	var req cardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}

	c, err := h.CardService.UpdateCard(r.Context(), userID, cardID, req.params())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toCardResponse(c))
}

func (h *CardHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	cardID := r.PathValue("cardId")

	if err := h.CardService.DeleteCard(r.Context(), userID, cardID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleMove re-points the card at the destination column given in the
// body. Cross-board moves are allowed when the caller can access both
// boards.
func (h *CardHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	cardID := r.PathValue("cardId")

	var req struct {
		ColumnID string `json:"columnId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}
	if req.ColumnID == "" {
		writeBadRequest(w, "columnId is required")
		return
	}

	c, err := h.CardService.MoveCard(r.Context(), userID, cardID, req.ColumnID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toCardResponse(c))
}
