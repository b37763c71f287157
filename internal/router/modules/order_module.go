package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/velora-shop/velora-api/internal/container"
	handlers "github.com/velora-shop/velora-api/internal/interface/http"
	"github.com/velora-shop/velora-api/internal/interface/middleware"
)

// OrderModule wires checkout and order routes; all of them require auth.
type OrderModule struct {
	Handler *handlers.OrderHandler
}

func NewOrderModule(h *handlers.OrderHandler) *OrderModule {
	return &OrderModule{Handler: h}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetTokens()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID()))
	{
		auth.POST("/checkout", m.Handler.Checkout)
		auth.POST("/orders", m.Handler.Create)
		auth.GET("/orders", m.Handler.List)
	}
}
