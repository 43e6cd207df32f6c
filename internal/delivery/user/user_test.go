package user

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
	"golang.org/x/crypto/bcrypt"

	userDomain "memgame/internal/domain/user"
	repo "memgame/internal/repository"
	userUC "memgame/internal/usecase/user"
)

func newTestRouter(t *testing.T) (*chi.Mux, userDomain.User, *repo.UserMapStorage) {
	t.Helper()

	users := repo.NewMapUserStorage()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	require.NoError(t, err)
	seeded, err := users.CreateUser(context.Background(), userDomain.User{
		Name:         "alice",
		Email:        "a@x.com",
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	})
	require.NoError(t, err)

	handler := NewUserHandler(userUC.NewUserUsecaseHandler(users), zap.NewNop().Sugar())

	r := chi.NewRouter()
	r.Put("/api/users/{id}", handler.Update)
	r.Delete("/api/users/{id}", handler.Delete)
	return r, seeded, users
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUpdate_ChangesProvidedFields(t *testing.T) {
	t.Parallel()

	router, seeded, users := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/api/users/"+seeded.ID.Hex(),
		`{"name":"alicia","password":"newsecret"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"name":"alicia"`)
	assert.NotContains(t, rec.Body.String(), "newsecret")

	stored, err := users.GetUserByID(context.Background(), seeded.ID.Hex())
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newsecret")))
	assert.Equal(t, "a@x.com", stored.Email, "email stays unchanged")
}

func TestUpdate_UnknownID(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/api/users/ffffffffffffffffffffffff",
		`{"name":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdate_BadEmail(t *testing.T) {
	t.Parallel()

	router, seeded, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/api/users/"+seeded.ID.Hex(),
		`{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	router, seeded, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodDelete, "/api/users/"+seeded.ID.Hex(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/users/"+seeded.ID.Hex(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
