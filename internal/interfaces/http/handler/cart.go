package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/solemart/backend/internal/application/cart"
	"github.com/solemart/backend/internal/interfaces/http/middleware"
)

// CartHandler handles cart requests. Every route requires
// authentication; the cart is always the caller's own.
type CartHandler struct {
	BaseHandler
	cartService *cart.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cart.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// List handles GET /api/v1/cart
func (h *CartHandler) List(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.cartService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req cart.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.cartService.AddItem(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateItem handles PUT /api/v1/cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid cart item ID")
		return
	}

	var req cart.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.cartService.UpdateQuantity(c.Request.Context(), userID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem handles DELETE /api/v1/cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid cart item ID")
		return
	}

	if err := h.cartService.RemoveItem(c.Request.Context(), userID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Clear handles DELETE /api/v1/cart
func (h *CartHandler) Clear(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
