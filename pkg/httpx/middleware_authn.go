package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/NituAlexandru/TaskPro-backend/pkg/jwtx"
	"github.com/NituAlexandru/TaskPro-backend/pkg/slogx"
)

// SessionChecker reports whether the session referenced by a token still
// resolves to a live session and user. Tokens that fail this check are
// rejected regardless of cryptographic validity, which is what makes logout
// an actual revocation.
type SessionChecker interface {
	SessionAlive(ctx context.Context, sessionID, userID string) (bool, error)
}

// AuthnMiddleware verifies the bearer access token and the session behind
// it, then injects the authenticated identity into the request context.
func AuthnMiddleware(v jwtx.Verifier, sessions SessionChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			if err := claims.ValidateUse(jwtx.UseAccess); err != nil {
				writeBearerError(w, "not an access token")
				return
			}

			alive, err := sessions.SessionAlive(ctx, claims.SID, claims.Subject)
			if err != nil {
				log.Error("session lookup failed", "err", err)
				WriteJSON(w, http.StatusInternalServerError, map[string]string{
					"message": "internal server error",
				})
				return
			}
			if !alive {
				writeBearerError(w, "session revoked")
				return
			}

			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithAuth(ctx context.Context, c *jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeySessionID, c.SID)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": desc})
}
