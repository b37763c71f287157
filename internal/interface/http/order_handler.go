package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/velora-shop/velora-api/internal/application"
	"github.com/velora-shop/velora-api/internal/interface/middleware"
	"github.com/velora-shop/velora-api/pkg/payment"
	"github.com/velora-shop/velora-api/pkg/response"
	"github.com/velora-shop/velora-api/pkg/validation"
)

type OrderHandler struct {
	Svc    *application.OrderService
	Logger *logrus.Logger
}

func NewOrderHandler(svc *application.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{Svc: svc, Logger: logger}
}

type checkoutRequest struct {
	SuccessURL string `json:"success_url" binding:"required,url"`
	CancelURL  string `json:"cancel_url" binding:"required,url"`
}

type createOrderRequest struct {
	PaymentRef string `json:"payment_ref" binding:"required"`
	Address    string `json:"address" binding:"required,min=5"`
}

// Checkout POST /api/checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	uid := c.GetString(middleware.CtxUserIDKey)
	sess, err := h.Svc.Checkout(c.Request.Context(), uid, req.SuccessURL, req.CancelURL)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmptyCart):
			response.Error[any](c, http.StatusBadRequest, "cart is empty", nil)
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, payment.ErrGatewayTimeout):
			response.Error[any](c, http.StatusGatewayTimeout, "payment provider timed out", nil)
		case errors.Is(err, payment.ErrGateway):
			if h.Logger != nil {
				h.Logger.WithError(err).Warn("checkout rejected by provider")
			}
			response.Error[any](c, http.StatusBadGateway, "payment provider error", nil)
		default:
			if h.Logger != nil {
				h.Logger.WithError(err).Error("checkout failed")
			}
			response.Error[any](c, http.StatusInternalServerError, "checkout failed", nil)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"session_id":   sess.ID,
		"checkout_url": sess.URL,
	}, "checkout session created", nil)
}

// Create POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	uid := c.GetString(middleware.CtxUserIDKey)
	o, err := h.Svc.CreateOrder(c.Request.Context(), uid, req.PaymentRef, req.Address)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmptyCart):
			response.Error[any](c, http.StatusBadRequest, "cart is empty", nil)
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		default:
			if h.Logger != nil {
				h.Logger.WithError(err).Error("order create failed")
			}
			response.Error[any](c, http.StatusInternalServerError, "order create failed", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, o, "order created", nil)
}

// List GET /api/orders
func (h *OrderHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	orders, err := h.Svc.ListByUser(c.Request.Context(), uid)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("order list failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "order list failed", nil)
		return
	}
	response.Success(c, http.StatusOK, orders, "orders", map[string]any{"count": len(orders)})
}
