package http

import (
	"encoding/json"
	"net/http"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/service"
	"github.com/NituAlexandru/TaskPro-backend/pkg/cryptox"
	"github.com/NituAlexandru/TaskPro-backend/pkg/httpx"
)

// AuthHandler serves registration, login, token refresh, logout, and the
// Google sign-in flow.
type AuthHandler struct {
	AuthService *service.AuthService
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}

	res, err := h.AuthService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authResponse{
		User:   toUserResponse(res.User),
		Tokens: res.Tokens,
	})
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}

	res, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authResponse{
		User:   toUserResponse(res.User),
		Tokens: res.Tokens,
	})
}

func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}
	if req.RefreshToken == "" {
		writeBadRequest(w, "refreshToken is required")
		return
	}

	pair, err := h.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, pair)
}

// HandleLogout deletes the session behind the presented access token,
// revoking the whole pair.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	sessionID := httpx.SessionIDFromContext(r.Context())

	if err := h.AuthService.Logout(r.Context(), sessionID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// HandleGoogleURL returns the provider consent URL the client redirects to.
func (h *AuthHandler) HandleGoogleURL(w http.ResponseWriter, r *http.Request) {
	state, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	u, err := h.AuthService.GoogleConsentURL(state)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"url": u})
}

// HandleGoogleLogin exchanges the OAuth authorization code for a session.
func (h *AuthHandler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}

	res, err := h.AuthService.LoginWithGoogle(r.Context(), req.Code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authResponse{
		User:   toUserResponse(res.User),
		Tokens: res.Tokens,
	})
}
