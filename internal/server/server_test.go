package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/auth"
	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	srv *Server
	app *fiber.App
	db  *gorm.DB
}

// setupTestServer wires a Server against an in-memory database and miniredis.
// The Prometheus middleware is left out; registering collectors twice in one
// test binary panics.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()
	cache.SetClient(nil)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{
		JWTSecret: "test-secret",
		Port:      "8460",
		DBDriver:  "sqlite",
		Env:       "test",
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	authService := auth.NewService(cfg.JWTSecret, rdb)

	srv := &Server{
		config:      cfg,
		db:          db,
		redis:       rdb,
		auth:        authService,
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
	srv.userService = service.NewUserService(userRepo, authService)
	srv.postService = service.NewPostService(postRepo)
	srv.commentService = service.NewCommentService(commentRepo, postRepo)

	app := fiber.New()
	srv.SetupRoutes(app)

	return &testEnv{srv: srv, app: app, db: db}
}

// request performs an HTTP round trip against the test app. A non-empty
// session attaches the session cookie.
func (e *testEnv) request(t *testing.T, method, path string, body any, session string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: session})
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// register creates a user through the public endpoint.
func (e *testEnv) register(t *testing.T, name, password string) models.User {
	t.Helper()

	resp := e.request(t, http.MethodPost, "/user",
		map[string]string{"name": name, "password": password}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	decodeBody(t, resp, &user)
	return user
}

// login authenticates and returns the session cookie value and bearer token.
func (e *testEnv) login(t *testing.T, name, password string) (session, token string) {
	t.Helper()

	resp := e.request(t, http.MethodPost, "/login",
		map[string]string{"name": name, "password": password}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == auth.SessionCookie {
			session = cookie.Value
		}
	}
	require.NotEmpty(t, session)

	var body struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.AccessToken)
	return session, body.AccessToken
}

func TestGreeting(t *testing.T) {
	env := setupTestServer(t)

	resp := env.request(t, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Hello World!!", body["msg"])
}

func TestHealthEndpoints(t *testing.T) {
	env := setupTestServer(t)

	resp := env.request(t, http.MethodGet, "/health/live", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = env.request(t, http.MethodGet, "/health/ready", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status string `json:"status"`
		Checks struct {
			Database string `json:"database"`
			Redis    string `json:"redis"`
		} `json:"checks"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "healthy", body.Checks.Database)
}

func TestSessionRequired(t *testing.T) {
	env := setupTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"CreatePost", http.MethodPost, "/post"},
		{"UpdatePost", http.MethodPut, "/post/1"},
		{"DeletePost", http.MethodDelete, "/post/1"},
		{"UpdateUser", http.MethodPut, "/user/1"},
		{"CreateComment", http.MethodPost, "/post/1/comment"},
		{"UpdateComment", http.MethodPut, "/comment/1"},
		{"DeleteComment", http.MethodDelete, "/comment/1"},
		{"Logout", http.MethodPost, "/logout"},
	}

	for _, tt := range tests {
		t.Run(tt.name+" without session", func(t *testing.T) {
			resp := env.request(t, tt.method, tt.path, map[string]string{}, "")
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			var body models.ErrorResponse
			decodeBody(t, resp, &body)
			assert.Equal(t, "User not logged in", body.Error)
		})
	}

	t.Run("Bogus session rejected", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/post",
			map[string]string{"title": "a", "content": "b"}, "not-a-real-session")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		_ = resp.Body.Close()
	})
}
