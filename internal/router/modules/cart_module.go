package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/velora-shop/velora-api/internal/container"
	handlers "github.com/velora-shop/velora-api/internal/interface/http"
	"github.com/velora-shop/velora-api/internal/interface/middleware"
)

// CartModule wires the cart routes; all of them require auth.
type CartModule struct {
	Handler *handlers.CartHandler
}

func NewCartModule(h *handlers.CartHandler) *CartModule {
	return &CartModule{Handler: h}
}

func (m *CartModule) Register(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	cart.Use(middleware.Auth(container.GetTokens()))
	cart.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	{
		cart.GET("", m.Handler.Get)
		cart.POST("/add", m.Handler.Add)
		cart.POST("/remove", m.Handler.Remove)
	}
}
