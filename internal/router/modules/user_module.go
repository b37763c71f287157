package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/velora-shop/velora-api/internal/container"
	handlers "github.com/velora-shop/velora-api/internal/interface/http"
	"github.com/velora-shop/velora-api/internal/interface/middleware"
)

// UserModule wires account routes.
// Public: POST /api/signup, POST /api/login
// Protected: POST /api/logout, GET /api/me
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())

	rg.POST("/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetTokens()))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/me", m.Handler.Me)
	}
}
