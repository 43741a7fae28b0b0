package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	httpapi "github.com/NituAlexandru/TaskPro-backend/internal/taskpro/http"
	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/service"
	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/store/drivers/sqlite"
	"github.com/NituAlexandru/TaskPro-backend/pkg/cryptox"
	"github.com/NituAlexandru/TaskPro-backend/pkg/jwtx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "http-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	kp, err := jwtx.GenerateKeyPair()
	require.NoError(t, err)
	signer, err := jwtx.NewSigner(kp)
	require.NoError(t, err)
	verifier := jwtx.NewVerifier(jwtx.NewKeySet(kp), "taskpro-test")

	auth := &service.AuthService{
		Store:    st,
		Signer:   signer,
		Verifier: verifier,
		Issuer:   "taskpro-test",
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := httpapi.NewRouter(verifier, "test", t.TempDir(), st, logger)
	router.AuthService = auth
	router.BoardService = &service.BoardService{Store: st}
	router.ColumnService = &service.ColumnService{Store: st}
	router.CardService = &service.CardService{Store: st}
	router.InvitationService = &service.InvitationService{Store: st}
	router.UserService = &service.UserService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// doJSON issues a request with an optional bearer token and decodes the
// response body into out when it is non-nil.
func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

type authPayload struct {
	User struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Theme string `json:"theme"`
	} `json:"user"`
	Tokens struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	} `json:"tokens"`
}

func register(t *testing.T, srv *httptest.Server, name, email string) authPayload {
	t.Helper()

	var out authPayload
	resp := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "Secret123!",
	}, &out)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return out
}

func TestRegisterBoardColumnCardScenario(t *testing.T) {
	srv := newTestServer(t)

	alice := register(t, srv, "Alice", "alice@example.com")
	token := alice.Tokens.AccessToken

	var board struct {
		ID string `json:"id"`
	}
	resp := doJSON(t, srv, http.MethodPost, "/api/boards", token, map[string]string{
		"title": "Launch plan", "background": "sea", "icon": "icon-star",
	}, &board)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var column struct {
		ID      string `json:"id"`
		OwnerID string `json:"ownerId"`
	}
	resp = doJSON(t, srv, http.MethodPost, "/api/boards/"+board.ID+"/columns", token,
		map[string]string{"title": "To Do"}, &column)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, alice.User.ID, column.OwnerID)

	var card struct {
		ID            string `json:"id"`
		BoardID       string `json:"boardId"`
		Priority      string `json:"priority"`
		PriorityColor string `json:"priorityColor"`
	}
	resp = doJSON(t, srv, http.MethodPost, "/api/columns/"+column.ID+"/cards", token,
		map[string]string{"title": "Write docs", "priority": "high"}, &card)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, board.ID, card.BoardID)
	require.Equal(t, "high", card.Priority)
	require.Equal(t, "#bedbb0", card.PriorityColor)

	t.Run("deep read returns the tree", func(t *testing.T) {
		var tree struct {
			Title   string `json:"title"`
			Columns []struct {
				ID    string `json:"id"`
				Cards []struct {
					Title string `json:"title"`
				} `json:"cards"`
			} `json:"columns"`
		}
		resp := doJSON(t, srv, http.MethodGet, "/api/boards/"+board.ID, token, nil, &tree)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "Launch plan", tree.Title)
		require.Len(t, tree.Columns, 1)
		require.Len(t, tree.Columns[0].Cards, 1)
		require.Equal(t, "Write docs", tree.Columns[0].Cards[0].Title)
	})

	t.Run("priority filter keeps empty columns", func(t *testing.T) {
		var empty struct {
			ID string `json:"id"`
		}
		resp := doJSON(t, srv, http.MethodPost, "/api/boards/"+board.ID+"/columns", token,
			map[string]string{"title": "Done"}, &empty)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var tree struct {
			Columns []struct {
				Cards []struct{} `json:"cards"`
			} `json:"columns"`
		}
		resp = doJSON(t, srv, http.MethodGet, "/api/boards/"+board.ID+"?priority=high", token, nil, &tree)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, tree.Columns, 2)
		require.Len(t, tree.Columns[0].Cards, 1)
		require.Empty(t, tree.Columns[1].Cards)
	})

	t.Run("bad priority filter is 400", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodGet, "/api/boards/"+board.ID+"?priority=urgent", token, nil, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("strangers get 403, missing boards 404", func(t *testing.T) {
		mallory := register(t, srv, "Mallory", "mallory@example.com")

		resp := doJSON(t, srv, http.MethodGet, "/api/boards/"+board.ID, mallory.Tokens.AccessToken, nil, nil)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp = doJSON(t, srv, http.MethodGet, "/api/boards/nope", token, nil, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("deleting the board cascades", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodDelete, "/api/boards/"+board.ID, token, nil, nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = doJSON(t, srv, http.MethodPatch, "/api/cards/"+card.ID, token,
			map[string]string{"title": "orphan"}, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestInvitationScenario(t *testing.T) {
	srv := newTestServer(t)

	owner := register(t, srv, "Owner", "owner@example.com")
	invitee := register(t, srv, "Invitee", "invitee@example.com")

	var board struct {
		ID string `json:"id"`
	}
	resp := doJSON(t, srv, http.MethodPost, "/api/boards", owner.Tokens.AccessToken,
		map[string]string{"title": "Shared"}, &board)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var inv struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	resp = doJSON(t, srv, http.MethodPost, "/api/boards/"+board.ID+"/invitations", owner.Tokens.AccessToken,
		map[string]string{"email": "invitee@example.com"}, &inv)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "pending", inv.Status)

	t.Run("duplicate pending invite conflicts", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/api/boards/"+board.ID+"/invitations", owner.Tokens.AccessToken,
			map[string]string{"email": "invitee@example.com"}, nil)
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("invitee sees it pending then accepts", func(t *testing.T) {
		var pending []struct {
			ID    string `json:"id"`
			Board struct {
				Title string `json:"title"`
			} `json:"board"`
		}
		resp := doJSON(t, srv, http.MethodGet, "/api/invitations/pending", invitee.Tokens.AccessToken, nil, &pending)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, pending, 1)
		require.Equal(t, "Shared", pending[0].Board.Title)

		resp = doJSON(t, srv, http.MethodPost, "/api/invitations/"+inv.ID+"/accept", invitee.Tokens.AccessToken, nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		// Access granted: the board now shows up for the invitee.
		resp = doJSON(t, srv, http.MethodGet, "/api/boards/"+board.ID, invitee.Tokens.AccessToken, nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("terminal transitions are conflicts", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/api/invitations/"+inv.ID+"/decline", invitee.Tokens.AccessToken, nil, nil)
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("declining a re-invitation revokes access", func(t *testing.T) {
		var again struct {
			ID string `json:"id"`
		}
		resp := doJSON(t, srv, http.MethodPost, "/api/boards/"+board.ID+"/invitations", owner.Tokens.AccessToken,
			map[string]string{"email": "invitee@example.com"}, &again)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = doJSON(t, srv, http.MethodPost, "/api/invitations/"+again.ID+"/decline", invitee.Tokens.AccessToken, nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		// Declining removed the invitee from the collaborator set.
		resp = doJSON(t, srv, http.MethodGet, "/api/boards/"+board.ID, invitee.Tokens.AccessToken, nil, nil)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("only the invitee resolves", func(t *testing.T) {
		var second struct {
			ID string `json:"id"`
		}
		third := register(t, srv, "Third", "third@example.com")
		resp := doJSON(t, srv, http.MethodPost, "/api/boards/"+board.ID+"/invitations", owner.Tokens.AccessToken,
			map[string]string{"email": "third@example.com"}, &second)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = third

		resp = doJSON(t, srv, http.MethodPost, "/api/invitations/"+second.ID+"/accept", owner.Tokens.AccessToken, nil, nil)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestAuthFlowOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	alice := register(t, srv, "Alice", "alice@example.com")

	t.Run("login failure is 403 with a neutral message", func(t *testing.T) {
		var out struct {
			Message string `json:"message"`
		}
		resp := doJSON(t, srv, http.MethodPost, "/api/auth/login", "",
			map[string]string{"email": "alice@example.com", "password": "wrong"}, &out)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		require.Equal(t, "email or password is wrong", out.Message)
	})

	t.Run("missing token is 401", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodGet, "/api/users/current", "", nil, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("refresh token cannot be used as access token", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodGet, "/api/users/current", alice.Tokens.RefreshToken, nil, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("refresh rotates the pair", func(t *testing.T) {
		var pair struct {
			AccessToken string `json:"accessToken"`
		}
		resp := doJSON(t, srv, http.MethodPost, "/api/auth/refresh", "",
			map[string]string{"refreshToken": alice.Tokens.RefreshToken}, &pair)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = doJSON(t, srv, http.MethodGet, "/api/users/current", pair.AccessToken, nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("logout revokes both tokens", func(t *testing.T) {
		bob := register(t, srv, "Bob", "bob@example.com")

		resp := doJSON(t, srv, http.MethodPost, "/api/auth/logout", bob.Tokens.AccessToken, nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = doJSON(t, srv, http.MethodGet, "/api/users/current", bob.Tokens.AccessToken, nil, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp = doJSON(t, srv, http.MethodPost, "/api/auth/refresh", "",
			map[string]string{"refreshToken": bob.Tokens.RefreshToken}, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/api/auth/register", "",
			map[string]string{"name": "Clone", "email": "alice@example.com", "password": "Secret123!"}, nil)
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestUserEndpoints(t *testing.T) {
	srv := newTestServer(t)
	alice := register(t, srv, "Alice", "alice@example.com")
	token := alice.Tokens.AccessToken

	t.Run("theme patch", func(t *testing.T) {
		var out struct {
			Theme string `json:"theme"`
		}
		resp := doJSON(t, srv, http.MethodPatch, "/api/users/theme", token,
			map[string]string{"theme": "violet"}, &out)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "violet", out.Theme)

		resp = doJSON(t, srv, http.MethodPatch, "/api/users/theme", token,
			map[string]string{"theme": "neon"}, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("profile patch", func(t *testing.T) {
		var out struct {
			Name string `json:"name"`
		}
		resp := doJSON(t, srv, http.MethodPatch, "/api/users/profile", token,
			map[string]string{"name": "Alicia"}, &out)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "Alicia", out.Name)
	})

	t.Run("help request", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/api/users/help", token,
			map[string]string{"email": "alice@example.com", "comment": "cannot move cards"}, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("avatar upload", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("avatar", "me.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake-png-bytes"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req, err := http.NewRequest(http.MethodPatch, srv.URL+"/api/users/avatar", &buf)
		require.NoError(t, err)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out struct {
			AvatarURL string `json:"avatarUrl"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		require.Contains(t, out.AvatarURL, "/uploads/avatars/")

		// The uploaded file is served back.
		got, err := srv.Client().Get(srv.URL + out.AvatarURL)
		require.NoError(t, err)
		defer got.Body.Close()
		require.Equal(t, http.StatusOK, got.StatusCode)
	})

	t.Run("health endpoints", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodGet, "/livez", "", nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = doJSON(t, srv, http.MethodGet, "/readyz", "", nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
