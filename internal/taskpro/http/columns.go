package http

import (
	"encoding/json"
	"net/http"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/service"
	"github.com/NituAlexandru/TaskPro-backend/pkg/httpx"
)

// ColumnHandler serves column operations under a board.
type ColumnHandler struct {
	ColumnService *service.ColumnService
}

func (h *ColumnHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	boardID := r.PathValue("boardId")

	cols, err := h.ColumnService.ListColumns(r.Context(), userID, boardID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := make([]columnResponse, 0, len(cols))
	for _, c := range cols {
		resp = append(resp, toColumnResponse(c))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *ColumnHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	boardID := r.PathValue("boardId")

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}

	col, err := h.ColumnService.CreateColumn(r.Context(), userID, boardID, req.Title)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toColumnResponse(col))
}

func (h *ColumnHandler) HandleRename(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	columnID := r.PathValue("columnId")

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}

	col, err := h.ColumnService.RenameColumn(r.Context(), userID, columnID, req.Title)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toColumnResponse(col))
}

func (h *ColumnHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	columnID := r.PathValue("columnId")

	if err := h.ColumnService.DeleteColumn(r.Context(), userID, columnID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
