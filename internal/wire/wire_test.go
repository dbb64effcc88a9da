package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ticket-service/internal/data/repository"
	"ticket-service/internal/event"
	"ticket-service/pkg/lock"
	"ticket-service/pkg/metrics"
	"ticket-service/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

type testServer struct {
	t     *testing.T
	app   *App
	token string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	config := &utils.Config{
		Auth: utils.AuthConfig{
			AdminUsername: "admin",
			AdminPassword: "admin",
			JWTSecret:     "test-secret",
			SessionTTL:    time.Hour,
			BcryptCost:    4,
		},
	}
	app := Wiring(repository.NewMemoryRepository(zap.NewNop()), config,
		lock.NewLocalLocker(), event.NopPublisher{}, metrics.New(), zap.NewNop())
	require.NoError(t, app.Service.Auth.SeedAdmin(context.Background()))
	return &testServer{t: t, app: app}
}

func (s *testServer) do(method, path string, body any) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	rec := httptest.NewRecorder()
	s.app.Router.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec.Code, env
}

func (s *testServer) login() {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/login", map[string]string{"username": "admin", "password": "admin"})
	require.Equal(s.t, http.StatusOK, code)

	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &auth))
	require.NotEmpty(s.t, auth.Token)
	s.token = auth.Token
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestAdminRoutesRequireSession(t *testing.T) {
	s := newTestServer(t)
	code, _ := s.do(http.MethodPost, "/api/admin/movies", map[string]any{"name": "M", "genre": "g", "length": 90})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodGet, "/api/account", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestSchedulingOverHTTP(t *testing.T) {
	s := newTestServer(t)
	s.login()

	code, env := s.do(http.MethodGet, "/api/account", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"username":"admin","role":"admin"}`, string(env.Data))

	code, _ = s.do(http.MethodPost, "/api/admin/movies", map[string]any{"name": "Sátántangó", "genre": "drama", "length": 120})
	require.Equal(t, http.StatusCreated, code)
	code, _ = s.do(http.MethodPost, "/api/admin/movies", map[string]any{"name": "Stalker", "genre": "sci-fi", "length": 130})
	require.Equal(t, http.StatusCreated, code)
	code, _ = s.do(http.MethodPost, "/api/admin/rooms", map[string]any{"name": "Kamra", "rows": 10, "columns": 12})
	require.Equal(t, http.StatusCreated, code)

	code, env = s.do(http.MethodPost, "/api/admin/movies", map[string]any{"name": "Stalker", "genre": "x", "length": 1})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "the movie already exists", env.Message)

	code, env = s.do(http.MethodPost, "/api/admin/movies", map[string]any{"name": "Bad", "genre": "x", "length": 0})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Status)

	book := func(movie, at string) (int, envelope) {
		return s.do(http.MethodPost, "/api/admin/screenings", map[string]string{"movie": movie, "room": "Kamra", "starts_at": at})
	}

	code, _ = book("Sátántangó", "2023-11-26 20:00")
	require.Equal(t, http.StatusCreated, code)

	code, env = book("Stalker", "2023-11-26 22:05")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "this would start in the break period after another screening in this room", env.Message)

	code, env = book("Stalker", "2023-11-26 19:30")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "there is an overlapping screening", env.Message)

	code, _ = book("Stalker", "2023-11-26 22:11")
	require.Equal(t, http.StatusCreated, code)

	code, env = book("Nope", "2023-11-26 08:00")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "the given movie does not exist", env.Message)

	code, _ = book("Stalker", "26.11.2023 08:00")
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodGet, "/api/screenings", nil)
	require.Equal(t, http.StatusOK, code)
	var screenings []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &screenings))
	assert.Len(t, screenings, 2)

	code, env = s.do(http.MethodGet, "/api/rooms/Kamra/timetable", nil)
	require.Equal(t, http.StatusOK, code)
	var timetable struct {
		Screenings []struct {
			StartsAt    string `json:"starts_at"`
			BreakEndsAt string `json:"break_ends_at"`
		} `json:"screenings"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &timetable))
	require.Len(t, timetable.Screenings, 2)
	assert.Equal(t, "2023-11-26 22:10", timetable.Screenings[0].BreakEndsAt)

	code, _ = s.do(http.MethodDelete, "/api/admin/movies/Stalker", nil)
	assert.Equal(t, http.StatusConflict, code)

	cancel := map[string]string{"movie": "Stalker", "room": "Kamra", "starts_at": "2023-11-26 22:11"}
	code, _ = s.do(http.MethodDelete, "/api/admin/screenings", cancel)
	require.Equal(t, http.StatusOK, code)
	code, env = s.do(http.MethodDelete, "/api/admin/screenings", cancel)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "the given screening does not exist", env.Message)

	code, _ = s.do(http.MethodDelete, "/api/admin/movies/Stalker", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodPost, "/api/logout", nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodGet, "/api/account", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestLogoutAllOverHTTP(t *testing.T) {
	s := newTestServer(t)
	s.login()
	first := s.token
	s.login()

	code, _ := s.do(http.MethodPost, "/api/logout/all", nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodGet, "/api/account", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	s.token = first
	code, _ = s.do(http.MethodGet, "/api/account", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	s.token = ""
	code, _ = s.do(http.MethodPost, "/api/logout/all", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(http.MethodGet, "/api/movies", nil)

	rec := httptest.NewRecorder()
	s.app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `path="/api/movies"`)
}
