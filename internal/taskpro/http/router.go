package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/service"
	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/store"
	"github.com/NituAlexandru/TaskPro-backend/pkg/httpx"
	"github.com/NituAlexandru/TaskPro-backend/pkg/jwtx"
	"github.com/NituAlexandru/TaskPro-backend/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	avatarDir    string

	store             store.Store
	AuthService       *service.AuthService
	BoardService      *service.BoardService
	ColumnService     *service.ColumnService
	CardService       *service.CardService
	InvitationService *service.InvitationService
	UserService       *service.UserService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion, avatarDir string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		avatarDir:    avatarDir,
		store:        st,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerBoards()
	r.registerColumns()
	r.registerCards()
	r.registerInvitations()
	r.registerSystem()
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authed wraps a handler with bearer authentication and a per-user rate
// limit.
func (r *Router) authed(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier, r.AuthService),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Credential endpoints get the strict per-IP limit to slow brute force.
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister), httpx.RateLimitByIP(httpx.StrictLimit)))
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin), httpx.RateLimitByIP(httpx.StrictLimit)))
	r.Mux.Handle("POST /api/auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh), httpx.RateLimitByIP(httpx.ModerateLimit)))

	r.Mux.Handle("GET /api/auth/google",
		httpx.Chain(http.HandlerFunc(h.HandleGoogleURL), httpx.RateLimitByIP(httpx.LenientLimit)))
	r.Mux.Handle("POST /api/auth/google",
		httpx.Chain(http.HandlerFunc(h.HandleGoogleLogin), httpx.RateLimitByIP(httpx.StrictLimit)))

	r.Mux.Handle("POST /api/auth/logout", r.authed(h.HandleLogout, httpx.ModerateLimit))
}

func (r *Router) registerUsers() {
	h := &UserHandler{UserService: r.UserService, AvatarDir: r.avatarDir}

	r.Mux.Handle("GET /api/users/current", r.authed(h.HandleCurrent, httpx.LenientLimit))
	r.Mux.Handle("PATCH /api/users/profile", r.authed(h.HandleUpdateProfile, httpx.ModerateLimit))
	r.Mux.Handle("PATCH /api/users/theme", r.authed(h.HandleUpdateTheme, httpx.ModerateLimit))
	r.Mux.Handle("PATCH /api/users/avatar", r.authed(h.HandleUploadAvatar, httpx.ModerateLimit))
	r.Mux.Handle("POST /api/users/help", r.authed(h.HandleHelpRequest, httpx.ModerateLimit))
}

func (r *Router) registerBoards() {
	h := &BoardHandler{BoardService: r.BoardService}

	r.Mux.Handle("GET /api/boards", r.authed(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("POST /api/boards", r.authed(h.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("GET /api/boards/{boardId}", r.authed(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("PATCH /api/boards/{boardId}", r.authed(h.HandleUpdate, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/boards/{boardId}", r.authed(h.HandleDelete, httpx.ModerateLimit))
}

func (r *Router) registerColumns() {
	h := &ColumnHandler{ColumnService: r.ColumnService}

	r.Mux.Handle("GET /api/boards/{boardId}/columns", r.authed(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("POST /api/boards/{boardId}/columns", r.authed(h.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("PATCH /api/columns/{columnId}", r.authed(h.HandleRename, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/columns/{columnId}", r.authed(h.HandleDelete, httpx.ModerateLimit))
}

func (r *Router) registerCards() {
	h := &CardHandler{CardService: r.CardService}

	r.Mux.Handle("GET /api/columns/{columnId}/cards", r.authed(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("POST /api/columns/{columnId}/cards", r.authed(h.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("PATCH /api/cards/{cardId}", r.authed(h.HandleUpdate, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/cards/{cardId}", r.authed(h.HandleDelete, httpx.ModerateLimit))
	r.Mux.Handle("PATCH /api/cards/{cardId}/move", r.authed(h.HandleMove, httpx.ModerateLimit))
}

func (r *Router) registerInvitations() {
	h := &InvitationHandler{InvitationService: r.InvitationService}

	r.Mux.Handle("POST /api/boards/{boardId}/invitations", r.authed(h.HandleInvite, httpx.ModerateLimit))
	r.Mux.Handle("GET /api/invitations/pending", r.authed(h.HandleListPending, httpx.LenientLimit))
	r.Mux.Handle("POST /api/invitations/{invitationId}/accept", r.authed(h.HandleAccept, httpx.ModerateLimit))
	r.Mux.Handle("POST /api/invitations/{invitationId}/decline", r.authed(h.HandleDecline, httpx.ModerateLimit))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion), httpx.RateLimitByIP(httpx.LenientLimit)))
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store), httpx.RateLimitByIP(httpx.LenientLimit)))

	// Uploaded avatars are public static content.
	r.Mux.Handle("GET /uploads/avatars/",
		http.StripPrefix("/uploads/avatars/", http.FileServer(http.Dir(r.avatarDir))))
}
