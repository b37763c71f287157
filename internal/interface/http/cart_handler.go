package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/velora-shop/velora-api/internal/application"
	"github.com/velora-shop/velora-api/internal/interface/middleware"
	"github.com/velora-shop/velora-api/pkg/response"
	"github.com/velora-shop/velora-api/pkg/validation"
)

type CartHandler struct {
	Svc    *application.CartService
	Logger *logrus.Logger
}

func NewCartHandler(svc *application.CartService, logger *logrus.Logger) *CartHandler {
	return &CartHandler{Svc: svc, Logger: logger}
}

type cartItemRequest struct {
	ItemID int64  `json:"item_id" binding:"required,gt=0"`
	Size   string `json:"size" binding:"required,size_label"`
}

func (h *CartHandler) cartError(c *gin.Context, err error) {
	if errors.Is(err, application.ErrUserNotFound) {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	if h.Logger != nil {
		h.Logger.WithError(err).Error("cart operation failed")
	}
	response.Error[any](c, http.StatusInternalServerError, "cart operation failed", nil)
}

// Add POST /api/cart/add
func (h *CartHandler) Add(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Add(c.Request.Context(), uid, req.ItemID, req.Size); err != nil {
		h.cartError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"added": true}, "item added", nil)
}

// Remove POST /api/cart/remove
func (h *CartHandler) Remove(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Remove(c.Request.Context(), uid, req.ItemID, req.Size); err != nil {
		h.cartError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"removed": true}, "item removed", nil)
}

// Get GET /api/cart
func (h *CartHandler) Get(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	cart, err := h.Svc.Get(c.Request.Context(), uid)
	if err != nil {
		h.cartError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart, "cart", nil)
}
