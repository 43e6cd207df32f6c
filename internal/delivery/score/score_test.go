package score

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	userDomain "memgame/internal/domain/user"
	errs "memgame/internal/errors"
	"memgame/internal/middleware"
	repo "memgame/internal/repository"
	"memgame/internal/token"
	scoreUC "memgame/internal/usecase/score"
)

type stubResolver struct {
	users map[string]userDomain.User
}

func (s *stubResolver) GetUserByID(_ context.Context, id string) (userDomain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return userDomain.User{}, errs.ErrUserNotFound
	}
	return u, nil
}

func newTestRouter(protect bool, tokens *token.Manager, resolver UserResolver) *chi.Mux {
	uc := scoreUC.NewScoreUseCase(repo.NewMapScoreStorage(), nil, zap.NewNop().Sugar())
	handler := NewScoreHandler(uc, resolver, zap.NewNop().Sugar())

	r := chi.NewRouter()
	r.Route("/api/highscore", func(r chi.Router) {
		if protect {
			r.Use(middleware.RequireAuth(tokens))
		}
		r.Post("/", handler.Submit)
		r.Get("/{level}", handler.GetBest)
	})
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSubmit_CreateUpdateUnchanged(t *testing.T) {
	t.Parallel()

	router := newTestRouter(false, nil, &stubResolver{})

	rec := doJSON(t, router, http.MethodPost, "/api/highscore",
		`{"username":"alice","moves":10,"level":"1"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/highscore",
		`{"username":"alice","moves":5,"level":"1"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "updated successfully")

	rec = doJSON(t, router, http.MethodPost, "/api/highscore",
		`{"username":"alice","moves":20,"level":"1"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "not updated")

	rec = doJSON(t, router, http.MethodGet, "/api/highscore/1?username=alice", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"moves":5`)
}

func TestSubmit_BadInput(t *testing.T) {
	t.Parallel()

	router := newTestRouter(false, nil, &stubResolver{})

	tests := []struct {
		name string
		body string
	}{
		{"missing moves", `{"username":"alice","level":"1"}`},
		{"negative moves", `{"username":"alice","moves":-3,"level":"1"}`},
		{"empty username", `{"username":"","moves":3,"level":"1"}`},
		{"empty level", `{"username":"alice","moves":3,"level":""}`},
		{"moves as string", `{"username":"alice","moves":"3","level":"1"}`},
		{"unknown field", `{"username":"alice","moves":3,"level":"1","bogus":true}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := doJSON(t, router, http.MethodPost, "/api/highscore", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestGetBest_NotFound(t *testing.T) {
	t.Parallel()

	router := newTestRouter(false, nil, &stubResolver{})

	rec := doJSON(t, router, http.MethodGet, "/api/highscore/9?username=alice", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No high score yet")
}

func TestGetBest_MissingUsernameWhenPublic(t *testing.T) {
	t.Parallel()

	router := newTestRouter(false, nil, &stubResolver{})

	rec := doJSON(t, router, http.MethodGet, "/api/highscore/1", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutes_TokenGate(t *testing.T) {
	t.Parallel()

	tokens := token.NewManager("test-secret", time.Hour)
	resolver := &stubResolver{users: map[string]userDomain.User{
		"id-1": {Name: "alice", Email: "a@x.com"},
	}}
	router := newTestRouter(true, tokens, resolver)

	rec := doJSON(t, router, http.MethodPost, "/api/highscore",
		`{"username":"alice","moves":10,"level":"1"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "no token on a protected deployment")

	tok, err := tokens.Generate("id-1")
	require.NoError(t, err)
	authHeader := map[string]string{"x-auth-token": tok}

	rec = doJSON(t, router, http.MethodPost, "/api/highscore",
		`{"username":"alice","moves":10,"level":"1"}`, authHeader)
	assert.Equal(t, http.StatusCreated, rec.Code)

	// no query parameter: the username falls back to the token identity
	rec = doJSON(t, router, http.MethodGet, "/api/highscore/1", "", authHeader)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
	assert.Contains(t, rec.Body.String(), `"moves":10`)
}
