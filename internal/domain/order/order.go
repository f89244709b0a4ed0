package order

import (
	"strings"

	"github.com/google/uuid"

	"github.com/solemart/backend/internal/domain/shared"
	"github.com/solemart/backend/internal/domain/shared/valueobject"
)

// Status represents the lifecycle state of an order
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// IsValid checks if the status is a known value
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo checks if the status can move to the target status
func (s Status) CanTransitionTo(target Status) bool {
	transitions := map[Status][]Status{
		StatusPending:    {StatusProcessing, StatusCancelled},
		StatusProcessing: {StatusShipped, StatusCancelled},
		StatusShipped:    {StatusDelivered},
	}
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// LineItem is a snapshot of a cart line at checkout time.
// ProductName and UnitPrice are frozen copies; later catalog edits
// do not affect existing orders.
type LineItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID         `gorm:"type:uuid;not null"`
	ProductName string            `gorm:"not null;size:255"`
	Size        string            `gorm:"size:32;not null;default:''"`
	Color       string            `gorm:"size:32;not null;default:''"`
	Quantity    int               `gorm:"not null"`
	UnitPrice   valueobject.Money `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the database table name
func (LineItem) TableName() string {
	return "order_items"
}

// Subtotal returns quantity times the frozen unit price
func (l *LineItem) Subtotal() valueobject.Money {
	return l.UnitPrice.MultiplyByInt(int64(l.Quantity))
}

// Order is the order aggregate root
type Order struct {
	shared.BaseAggregateRoot
	UserID          uuid.UUID         `gorm:"type:uuid;not null;index"`
	Status          Status            `gorm:"not null;size:32;index"`
	TotalAmount     valueobject.Money `gorm:"type:decimal(12,2);not null"`
	ShippingAddress string            `gorm:"type:text;not null"`
	Items           []LineItem        `gorm:"foreignKey:OrderID"`
}

// TableName returns the database table name
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a pending order with no lines
func NewOrder(userID uuid.UUID, shippingAddress string) (*Order, error) {
	if strings.TrimSpace(shippingAddress) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Shipping address cannot be empty")
	}
	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Status:            StatusPending,
		TotalAmount:       valueobject.ZeroUSD(),
		ShippingAddress:   shippingAddress,
	}, nil
}

// AddLine appends a frozen line and accumulates the order total
func (o *Order) AddLine(productID uuid.UUID, productName, size, color string, quantity int, unitPrice valueobject.Money) error {
	if quantity < 1 {
		return shared.ErrInvalidQuantity
	}
	line := LineItem{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     o.ID,
		ProductID:   productID,
		ProductName: productName,
		Size:        size,
		Color:       color,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}
	total, err := o.TotalAmount.Add(line.Subtotal())
	if err != nil {
		return err
	}
	o.Items = append(o.Items, line)
	o.TotalAmount = total
	return nil
}

// IsEmpty reports whether the order has no lines
func (o *Order) IsEmpty() bool {
	return len(o.Items) == 0
}

// TransitionTo moves the order to a new status, enforcing the
// pending -> processing -> shipped -> delivered lifecycle with
// cancellation allowed before shipment.
func (o *Order) TransitionTo(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot transition order from "+string(o.Status)+" to "+string(target))
	}
	o.Status = target
	o.IncrementVersion()
	return nil
}
