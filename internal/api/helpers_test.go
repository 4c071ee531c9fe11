package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/simverse/simverse-api/internal/api"
	apimiddleware "github.com/simverse/simverse-api/internal/api/middleware"
	"github.com/simverse/simverse-api/internal/config"
	"github.com/simverse/simverse-api/internal/platform/filestore"
	"github.com/simverse/simverse-api/internal/service"
	"github.com/simverse/simverse-api/internal/service/auth"
)

// testServer wires the full handler stack over a file-backed store.
type testServer struct {
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := filestore.New(filepath.Join(t.TempDir(), "state.json"), nil)
	require.NoError(t, err)

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:          strings.Repeat("t", 32),
		TokenLifetimeHours: 1,
	})
	require.NoError(t, err)

	accounts := service.NewAccountService(st, auth.NewBcryptHasher(), nil)
	progress := service.NewProgressService(st, nil)
	lessons := service.NewLessonService(st, nil, nil)

	authHandler := api.NewAuthHandler(accounts, jwtService)
	preferencesHandler := api.NewPreferencesHandler(accounts)
	lessonHandler := api.NewLessonHandler(lessons)
	progressHandler := api.NewProgressHandler(progress)
	authMiddleware := apimiddleware.NewAuthMiddleware(jwtService)

	r := chi.NewRouter()
	r.Use(apimiddleware.Trace)
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/preferences", preferencesHandler.Get)
			r.Put("/preferences", preferencesHandler.Update)
			r.Post("/lessons", lessonHandler.Generate)
			r.Get("/history", lessonHandler.History)
			r.Get("/progress", progressHandler.List)
			r.Post("/progress/complete", progressHandler.Complete)
		})
	})

	return &testServer{router: r}
}

// do sends a JSON request, optionally authenticated, and returns the recorder.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// register creates an account and returns its auth response.
func (s *testServer) register(t *testing.T, email string) api.AuthResponse {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/auth/register", "", api.RegisterRequest{
		Email:    email,
		Password: "a-long-enough-password",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp api.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
