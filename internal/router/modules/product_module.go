package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/velora-shop/velora-api/internal/container"
	handlers "github.com/velora-shop/velora-api/internal/interface/http"
	"github.com/velora-shop/velora-api/internal/interface/middleware"
)

// ProductModule wires catalog routes. Reads are public; mutations and
// uploads require auth.
type ProductModule struct {
	Handler *handlers.ProductHandler
	Upload  *handlers.UploadHandler
}

func NewProductModule(h *handlers.ProductHandler, up *handlers.UploadHandler) *ProductModule {
	return &ProductModule{Handler: h, Upload: up}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	publicLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP())

	products := rg.Group("/products")
	products.Use(publicLimiter)
	{
		products.GET("", m.Handler.List)
		products.GET("/new-collections", m.Handler.NewCollections)
		products.GET("/popular-in-women", m.Handler.PopularInWomen)
		products.GET("/related", m.Handler.Related)
		products.GET("/search", m.Handler.Search)
		products.GET("/:id", m.Handler.Get)
	}

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetTokens()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID()))
	{
		auth.POST("/products", m.Handler.Create)
		auth.DELETE("/products/:id", m.Handler.Delete)
		auth.POST("/upload", m.Upload.Upload)
	}
}
