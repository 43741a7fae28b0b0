package http

import (
	"encoding/json"
	"net/http"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/domain"
	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/service"
	"github.com/NituAlexandru/TaskPro-backend/pkg/httpx"
)

// BoardHandler serves board CRUD and the aggregate deep read.
type BoardHandler struct {
	BoardService *service.BoardService
}

func (h *BoardHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	boards, err := h.BoardService.ListBoards(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := make([]boardResponse, 0, len(boards))
	for _, b := range boards {
		resp = append(resp, toBoardResponse(b))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *BoardHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	var req struct {
		Title         string   `json:"title"`
		Background    string   `json:"background"`
		Icon          string   `json:"icon"`
		Collaborators []string `json:"collaborators"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}

	b, err := h.BoardService.CreateBoard(r.Context(), userID, req.Title, req.Background, req.Icon, req.Collaborators)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toBoardResponse(b))
}

// HandleGet performs the deep read. An optional ?priority= query filters
// each column's cards to that priority or above; columns are never omitted.
func (h *BoardHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	boardID := r.PathValue("boardId")

	var minPriority *domain.Priority
	if raw := r.URL.Query().Get("priority"); raw != "" {
		p := domain.Priority(raw)
		minPriority = &p
	}

	tree, err := h.BoardService.GetBoardTree(r.Context(), userID, boardID, minPriority)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toBoardTreeResponse(tree))
}

func (h *BoardHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	boardID := r.PathValue("boardId")

	var req struct {
		Title      *string `json:"title"`
		Background *string `json:"background"`
		Icon       *string `json:"icon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}

	b, err := h.BoardService.UpdateBoard(r.Context(), userID, boardID, req.Title, req.Background, req.Icon)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toBoardResponse(b))
}

func (h *BoardHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	boardID := r.PathValue("boardId")

	if err := h.BoardService.DeleteBoard(r.Context(), userID, boardID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
