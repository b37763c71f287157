package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora-shop/velora-api/internal/application"
	"github.com/velora-shop/velora-api/internal/domain/entity"
	"github.com/velora-shop/velora-api/internal/interface/middleware"
	"github.com/velora-shop/velora-api/pkg/helpers"
)

func newCartTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()

	users := &memUserRepo{users: make(map[string]*entity.User)}
	tokens := helpers.NewTokenManager("test-secret")
	userSvc := application.NewUserService(users, tokens, nil)
	cartSvc := application.NewCartService(users, nil)
	h := NewCartHandler(cartSvc, nil)

	_, token, err := userSvc.Signup(context.Background(), "Ada", "ada@example.com", "password123")
	require.NoError(t, err)

	r := gin.New()
	cart := r.Group("/api/cart", middleware.Auth(tokens))
	cart.GET("", h.Get)
	cart.POST("/add", h.Add)
	cart.POST("/remove", h.Remove)
	return r, token
}

func TestCartHandler_AddRemoveGet(t *testing.T) {
	r, token := newCartTestRouter(t)
	auth := map[string]string{"Authorization": "Bearer " + token}

	for i := 0; i < 3; i++ {
		w := doJSON(t, r, http.MethodPost, "/api/cart/add", gin.H{"item_id": 7, "size": "M"}, auth)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := doJSON(t, r, http.MethodPost, "/api/cart/remove", gin.H{"item_id": 7, "size": "M"}, auth)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/cart", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data map[string]map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, 2, env.Data["7"]["M"])
}

func TestCartHandler_Validation(t *testing.T) {
	r, token := newCartTestRouter(t)
	auth := map[string]string{"Authorization": "Bearer " + token}

	tests := []struct {
		name string
		body gin.H
	}{
		{name: "missing item id", body: gin.H{"size": "M"}},
		{name: "zero item id", body: gin.H{"item_id": 0, "size": "M"}},
		{name: "negative item id", body: gin.H{"item_id": -1, "size": "M"}},
		{name: "missing size", body: gin.H{"item_id": 7}},
		{name: "oversized size label", body: gin.H{"item_id": 7, "size": "extralarge"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/cart/add", tt.body, auth)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCartHandler_Unauthorized(t *testing.T) {
	r, _ := newCartTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/cart/add", gin.H{"item_id": 7, "size": "M"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
