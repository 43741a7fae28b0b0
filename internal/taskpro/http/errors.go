package http

import (
	"errors"
	"net/http"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/service"
	"github.com/NituAlexandru/TaskPro-backend/pkg/httpx"
	"github.com/NituAlexandru/TaskPro-backend/pkg/slogx"
)

// errorResponse is the uniform error body.
type errorResponse struct {
	Message string `json:"message"`
}

// writeServiceError maps service sentinels onto the HTTP status taxonomy.
// 4xx responses carry the service error text; 5xx detail is logged only.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		httpx.WriteJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrInvalidRefresh), errors.Is(err, service.ErrSessionRevoked):
		httpx.WriteJSON(w, http.StatusUnauthorized, errorResponse{Message: err.Error()})
	// Login failure is 403, not 404: the response must not reveal whether
	// the email exists.
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteJSON(w, http.StatusForbidden, errorResponse{Message: "email or password is wrong"})
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteJSON(w, http.StatusForbidden, errorResponse{Message: "forbidden"})
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, errorResponse{Message: "not found"})
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteJSON(w, http.StatusConflict, errorResponse{Message: "email already in use"})
	case errors.Is(err, service.ErrInviteExists):
		httpx.WriteJSON(w, http.StatusConflict, errorResponse{Message: "invitation already pending"})
	case errors.Is(err, service.ErrInviteResolved):
		httpx.WriteJSON(w, http.StatusConflict, errorResponse{Message: "invitation already resolved"})
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
	}
}

func writeBadRequest(w http.ResponseWriter, message string) {
	httpx.WriteJSON(w, http.StatusBadRequest, errorResponse{Message: message})
}
