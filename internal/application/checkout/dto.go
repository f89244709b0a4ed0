package checkout

import (
	"time"

	"github.com/google/uuid"

	"github.com/solemart/backend/internal/domain/order"
)

// PlaceOrderRequest converts the caller's cart into an order.
// PaymentDetails is an opaque blob for a downstream payment provider;
// it is accepted as-is and never validated or persisted.
type PlaceOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	PaymentDetails  string `json:"payment_details"`
}

// UpdateStatusRequest moves an order to a new status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListOrdersFilter carries order listing filters
type ListOrdersFilter struct {
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// OrderItemResponse is the API representation of a frozen order line
type OrderItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Size        string    `json:"size"`
	Color       string    `json:"color"`
	Quantity    int       `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	Subtotal    string    `json:"subtotal"`
}

// OrderResponse is the API representation of an order
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	UserID          uuid.UUID           `json:"user_id"`
	Status          string              `json:"status"`
	TotalAmount     string              `json:"total_amount"`
	ShippingAddress string              `json:"shipping_address"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// ToOrderResponse converts an order aggregate to its API form
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items = append(items, OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Size:        item.Size,
			Color:       item.Color,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Subtotal:    item.Subtotal().StringFixed(2),
		})
	}
	return OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount.StringFixed(2),
		ShippingAddress: o.ShippingAddress,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
