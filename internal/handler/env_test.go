package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/service"
	"github.com/tasknest/tasknest/internal/testutil"
)

const testUserHeader = "X-Test-User"

var fastHashParams = auth.Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

type handlerEnv struct {
	router   chi.Router
	accounts *service.AccountService
	tasks    *service.TaskService
	tokens   auth.TokenService
}

// newHandlerEnv mounts the account and task handlers over an in-memory store.
// Protected routes read the caller from X-Test-User instead of a bearer token.
func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()

	store := testutil.NewSQLiteStore(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewJWTService("handler-test-secret", nil)

	accounts := service.NewAccountService(store, auth.NewHasher(fastHashParams), tokens, nil, nil, logger)
	tasks := service.NewTaskService(store, nil)

	authHandler := NewAuthHandler(accounts, logger)
	taskHandler := NewTaskHandler(tasks, logger)

	r := chi.NewRouter()
	r.Post("/api/auth/sign-up", authHandler.SignUp)
	r.Post("/api/auth/sign-in", authHandler.SignIn)
	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctx := auth.ContextWithUserID(r.Context(), r.Header.Get(testUserHeader))
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		})
		r.Post("/api/auth/logout", authHandler.Logout)
		r.Get("/api/auth/me", authHandler.Me)
		r.Get("/api/tasks", taskHandler.List)
		r.Post("/api/tasks", taskHandler.Create)
		r.Get("/api/tasks/{id}", taskHandler.Get)
		r.Put("/api/tasks/{id}", taskHandler.Update)
		r.Patch("/api/tasks/{id}", taskHandler.Update)
		r.Delete("/api/tasks/{id}", taskHandler.Delete)
		r.Patch("/api/tasks/{id}/complete", taskHandler.ToggleComplete)
	})

	return &handlerEnv{
		router:   r,
		accounts: accounts,
		tasks:    tasks,
		tokens:   tokens,
	}
}

func (e *handlerEnv) do(t *testing.T, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set(testUserHeader, userID)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// signUp creates an account through the service and returns its id.
func (e *handlerEnv) signUp(t *testing.T, email string) string {
	t.Helper()

	res, err := e.accounts.SignUp(t.Context(), service.SignUpInput{Email: email, Password: "s3cret"})
	if err != nil {
		t.Fatalf("SignUp(%s) failed: %v", email, err)
	}
	return res.User.ID
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return v
}
