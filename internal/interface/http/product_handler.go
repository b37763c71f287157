package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/velora-shop/velora-api/internal/application"
	"github.com/velora-shop/velora-api/internal/domain/repository"
	"github.com/velora-shop/velora-api/pkg/response"
	"github.com/velora-shop/velora-api/pkg/validation"
)

type ProductHandler struct {
	Svc    *application.ProductService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

type createProductRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=200"`
	Image       string   `json:"image" binding:"required,url"`
	Category    string   `json:"category" binding:"required,oneof=women men kid"`
	NewPrice    float64  `json:"new_price" binding:"required,gt=0"`
	OldPrice    float64  `json:"old_price" binding:"required,gt=0"`
	Description string   `json:"description" binding:"required"`
	Sizes       []string `json:"sizes" binding:"omitempty,dive,size_label"`
}

// Create POST /api/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	p, err := h.Svc.Create(c.Request.Context(), application.CreateProductInput{
		Name:        req.Name,
		Image:       req.Image,
		Category:    req.Category,
		NewPrice:    req.NewPrice,
		OldPrice:    req.OldPrice,
		Description: req.Description,
		Sizes:       req.Sizes,
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("product create failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "product create failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, p, "product created", nil)
}

// Delete DELETE /api/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid product id", nil)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("product_id", id).Error("product delete failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "product delete failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "product deleted", nil)
}

// List GET /api/products
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Svc.List(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("product list failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "product list failed", nil)
		return
	}
	response.Success(c, http.StatusOK, products, "products", map[string]any{"count": len(products)})
}

// Get GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid product id", nil)
		return
	}
	p, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "product not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "product fetch failed", nil)
		return
	}
	response.Success(c, http.StatusOK, p, "product", nil)
}

// NewCollections GET /api/products/new-collections
func (h *ProductHandler) NewCollections(c *gin.Context) {
	products, err := h.Svc.NewCollections(c.Request.Context())
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "product list failed", nil)
		return
	}
	response.Success(c, http.StatusOK, products, "new collections", nil)
}

// PopularInWomen GET /api/products/popular-in-women
func (h *ProductHandler) PopularInWomen(c *gin.Context) {
	products, err := h.Svc.PopularInWomen(c.Request.Context())
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "product list failed", nil)
		return
	}
	response.Success(c, http.StatusOK, products, "popular in women", nil)
}

// Related GET /api/products/related
func (h *ProductHandler) Related(c *gin.Context) {
	products, err := h.Svc.Related(c.Request.Context())
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "product list failed", nil)
		return
	}
	response.Success(c, http.StatusOK, products, "related products", nil)
}

// Search GET /api/products/search?q=...
func (h *ProductHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("product search failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}
