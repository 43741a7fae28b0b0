package http

import (
	"encoding/json"
	"net/http"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/service"
	"github.com/NituAlexandru/TaskPro-backend/pkg/httpx"
)

// InvitationHandler serves the board-sharing workflow.
type InvitationHandler struct {
	InvitationService *service.InvitationService
}

func (h *InvitationHandler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	boardID := r.PathValue("boardId")

	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}
	if req.Email == "" {
		writeBadRequest(w, "email is required")
		return
	}

	inv, err := h.InvitationService.Invite(r.Context(), userID, boardID, req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toInvitationResponse(inv))
}

func (h *InvitationHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	invitationID := r.PathValue("invitationId")

	inv, err := h.InvitationService.Accept(r.Context(), userID, invitationID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toInvitationResponse(inv))
}

func (h *InvitationHandler) HandleDecline(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	invitationID := r.PathValue("invitationId")

	inv, err := h.InvitationService.Decline(r.Context(), userID, invitationID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toInvitationResponse(inv))
}

func (h *InvitationHandler) HandleListPending(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	pending, err := h.InvitationService.ListPending(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := make([]invitationResponse, 0, len(pending))
	for _, p := range pending {
		resp = append(resp, toPendingInvitationResponse(p))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
