package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora-shop/velora-api/internal/application"
	"github.com/velora-shop/velora-api/internal/domain/entity"
	repo "github.com/velora-shop/velora-api/internal/domain/repository"
	"github.com/velora-shop/velora-api/internal/interface/middleware"
	"github.com/velora-shop/velora-api/pkg/helpers"
	"github.com/velora-shop/velora-api/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

// memUserRepo is a minimal in-memory UserRepository for handler tests.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.users {
		if ex.Email == u.Email {
			return repo.ErrConflict
		}
	}
	u.ID = uuid.NewString()
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUserRepo) IncrementCartItem(_ context.Context, id string, productID int64, size string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	if u.Cart == nil {
		u.Cart = entity.Cart{}
	}
	u.Cart.Increment(productID, size)
	return nil
}

func (m *memUserRepo) DecrementCartItem(_ context.Context, id string, productID int64, size string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.Cart.Decrement(productID, size)
	return nil
}

func (m *memUserRepo) GetCart(_ context.Context, id string) (entity.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return u.Cart, nil
}

func (m *memUserRepo) ReplaceCart(_ context.Context, id string, cart entity.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.Cart = cart
	return nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	users := &memUserRepo{users: make(map[string]*entity.User)}
	tokens := helpers.NewTokenManager("test-secret")
	svc := application.NewUserService(users, tokens, nil)
	h := NewUserHandler(svc, nil, "localhost", false)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/signup", h.Signup)
	api.POST("/login", h.Login)
	api.POST("/logout", middleware.Auth(tokens), h.Logout)
	api.GET("/me", middleware.Auth(tokens), h.Me)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    map[string]any    `json:"data"`
	Error   map[string]string `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestUserHandler_Signup(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/signup", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "password123",
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Data["id"])
	assert.NotEmpty(t, env.Data["token"])
	assert.Contains(t, w.Header().Get("Set-Cookie"), "auth_token=")
}

func TestUserHandler_Signup_DuplicateEmail(t *testing.T) {
	r := newTestRouter(t)

	body := gin.H{"name": "Ada", "email": "ada@example.com", "password": "password123"}
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/signup", body, nil).Code)

	w := doJSON(t, r, http.MethodPost, "/api/signup", body, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "email already registered", env.Message)
}

func TestUserHandler_Signup_Validation(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{name: "missing email", body: gin.H{"name": "Ada", "password": "password123"}},
		{name: "bad email", body: gin.H{"name": "Ada", "email": "not-an-email", "password": "password123"}},
		{name: "short password", body: gin.H{"name": "Ada", "email": "ada@example.com", "password": "short"}},
		{name: "short name", body: gin.H{"name": "A", "email": "ada@example.com", "password": "password123"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/signup", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			env := decodeEnvelope(t, w)
			assert.NotEmpty(t, env.Error)
		})
	}
}

func TestUserHandler_Login(t *testing.T) {
	r := newTestRouter(t)

	signup := gin.H{"name": "Ada", "email": "ada@example.com", "password": "password123"}
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/signup", signup, nil).Code)

	w := doJSON(t, r, http.MethodPost, "/api/login", gin.H{"email": "ada@example.com", "password": "password123"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.NotEmpty(t, env.Data["token"])

	w = doJSON(t, r, http.MethodPost, "/api/login", gin.H{"email": "ada@example.com", "password": "wrongpass"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/login", gin.H{"email": "ghost@example.com", "password": "password123"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "unknown email looks the same as a wrong password")
}

func TestUserHandler_Me(t *testing.T) {
	r := newTestRouter(t)

	signup := gin.H{"name": "Ada", "email": "ada@example.com", "password": "password123"}
	created := decodeEnvelope(t, doJSON(t, r, http.MethodPost, "/api/signup", signup, nil))
	token, _ := created.Data["token"].(string)
	require.NotEmpty(t, token)

	w := doJSON(t, r, http.MethodGet, "/api/me", nil, map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "ada@example.com", env.Data["email"])
}

func TestUserHandler_Me_Unauthorized(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "missing token", decodeEnvelope(t, w).Message)

	w = doJSON(t, r, http.MethodGet, "/api/me", nil, map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid token", decodeEnvelope(t, w).Message)
}
