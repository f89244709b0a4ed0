package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/solemart/backend/internal/application/checkout"
	"github.com/solemart/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles checkout and order lifecycle requests
type OrderHandler struct {
	BaseHandler
	checkoutService *checkout.CheckoutService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(checkoutService *checkout.CheckoutService) *OrderHandler {
	return &OrderHandler{checkoutService: checkoutService}
}

// Place handles POST /api/v1/orders
func (h *OrderHandler) Place(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req checkout.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.checkoutService.PlaceOrder(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /api/v1/orders. Regular users see their own
// orders; admins see every order.
func (h *OrderHandler) List(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter checkout.ListOrdersFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if middleware.IsAdmin(c) {
		p, err := h.checkoutService.ListAllOrders(c.Request.Context(), filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.SuccessWithMeta(c, p.Items, p.Total, p.Page, p.PageSize)
		return
	}

	p, err := h.checkoutService.ListOrders(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, p.Items, p.Total, p.Page, p.PageSize)
}

// Get handles GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.checkoutService.GetOrder(c.Request.Context(), userID, orderID, middleware.IsAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStatus handles PATCH /api/v1/orders/:id/status (admin)
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req checkout.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.checkoutService.UpdateStatus(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
