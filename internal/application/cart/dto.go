package cart

import (
	"time"

	"github.com/google/uuid"

	appcatalog "github.com/solemart/backend/internal/application/catalog"
	"github.com/solemart/backend/internal/domain/cart"
	"github.com/solemart/backend/internal/domain/catalog"
)

// AddItemRequest is the request to add a variant to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Size      string    `json:"size"`
	Color     string    `json:"color"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateQuantityRequest replaces a line's quantity
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// LineItemResponse is the API representation of a cart line.
// Product is nil when the referenced product no longer exists.
type LineItemResponse struct {
	ID        uuid.UUID                   `json:"id"`
	ProductID uuid.UUID                   `json:"product_id"`
	Size      string                      `json:"size"`
	Color     string                      `json:"color"`
	Quantity  int                         `json:"quantity"`
	Product   *appcatalog.ProductResponse `json:"product"`
	Subtotal  *string                     `json:"subtotal"`
	CreatedAt time.Time                   `json:"created_at"`
}

// CartResponse is a user's full cart with a server-computed total
type CartResponse struct {
	Items []LineItemResponse `json:"items"`
	Total string             `json:"total"`
}

// ToLineItemResponse converts a cart line and its product (possibly
// nil) to the API form.
func ToLineItemResponse(item *cart.LineItem, product *catalog.Product) LineItemResponse {
	resp := LineItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		Size:      item.Size,
		Color:     item.Color,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
	}
	if product != nil {
		pr := appcatalog.ToProductResponse(product)
		resp.Product = &pr
		subtotal := product.EffectivePrice().MultiplyByInt(int64(item.Quantity)).StringFixed(2)
		resp.Subtotal = &subtotal
	}
	return resp
}
