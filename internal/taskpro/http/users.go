package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/domain"
	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/service"
	"github.com/NituAlexandru/TaskPro-backend/pkg/httpx"
	"github.com/NituAlexandru/TaskPro-backend/pkg/slogx"
)

const maxAvatarBytes = 5 << 20 // 5 MiB

// UserHandler serves the current user's profile, preferences, avatar
// upload, and help requests.
type UserHandler struct {
	UserService *service.UserService

	// AvatarDir is where uploaded avatars land; they are served back under
	// /uploads/avatars/.
	AvatarDir string
}

func (h *UserHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	u, err := h.UserService.Profile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	var req struct {
		Name     string  `json:"name"`
		Password *string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}

	u, err := h.UserService.UpdateProfile(r.Context(), userID, req.Name, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) HandleUpdateTheme(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	var req struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}

	u, err := h.UserService.UpdateTheme(r.Context(), userID, domain.Theme(req.Theme))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// HandleUploadAvatar accepts a multipart "avatar" file. The upload lands in
// a temp file first; the temp file is removed on every path, success
// included, once the final file is in place.
func (h *UserHandler) HandleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		writeBadRequest(w, "multipart form too large or malformed")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeBadRequest(w, "avatar file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		writeBadRequest(w, "unsupported avatar format")
		return
	}

	tmp, err := os.CreateTemp("", "avatar-*")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	tmpName := tmp.Name()
	defer func() {
		if err := os.Remove(tmpName); err != nil && !os.IsNotExist(err) {
			slogx.FromContext(ctx).Warn("temp avatar cleanup failed", "err", err)
		}
	}()

	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		writeServiceError(w, r, err)
		return
	}
	if err := tmp.Close(); err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := os.MkdirAll(h.AvatarDir, 0750); err != nil {
		writeServiceError(w, r, err)
		return
	}
	finalName := fmt.Sprintf("%s%s", userID, ext)
	finalPath := filepath.Join(h.AvatarDir, finalName)
	if err := copyFile(tmpName, finalPath); err != nil {
		writeServiceError(w, r, err)
		return
	}

	u, err := h.UserService.UpdateAvatar(ctx, userID, "/uploads/avatars/"+finalName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// copyFile writes src's contents to dst. A rename would be cheaper but
// fails across filesystems, which is exactly where temp dirs tend to live.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0640)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func (h *UserHandler) HandleHelpRequest(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	var req struct {
		Email   string `json:"email"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}

	hr, err := h.UserService.SubmitHelpRequest(r.Context(), userID, req.Email, req.Comment)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]string{
		"id":      hr.ID,
		"message": "help request received",
	})
}
