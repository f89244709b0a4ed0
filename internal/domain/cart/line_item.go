package cart

import (
	"github.com/google/uuid"

	"github.com/solemart/backend/internal/domain/shared"
)

// LineItem is a single entry in a user's cart.
// Lines are keyed by the (user, product, size, color) variant:
// adding the same variant again increases quantity on the existing line.
type LineItem struct {
	shared.BaseAggregateRoot
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_cart_variant,unique"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index:idx_cart_variant,unique"`
	Size      string    `gorm:"size:32;not null;default:'';index:idx_cart_variant,unique"`
	Color     string    `gorm:"size:32;not null;default:'';index:idx_cart_variant,unique"`
	Quantity  int       `gorm:"not null"`
}

// TableName returns the database table name
func (LineItem) TableName() string {
	return "cart_items"
}

// NewLineItem creates a cart line with validation
func NewLineItem(userID, productID uuid.UUID, size, color string, quantity int) (*LineItem, error) {
	if quantity < 1 {
		return nil, shared.ErrInvalidQuantity
	}
	return &LineItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		ProductID:         productID,
		Size:              size,
		Color:             color,
		Quantity:          quantity,
	}, nil
}

// IncreaseQuantity adds to the line quantity
func (l *LineItem) IncreaseQuantity(delta int) error {
	if delta < 1 {
		return shared.ErrInvalidQuantity
	}
	l.Quantity += delta
	l.IncrementVersion()
	return nil
}

// UpdateQuantity replaces the line quantity
func (l *LineItem) UpdateQuantity(quantity int) error {
	if quantity < 1 {
		return shared.ErrInvalidQuantity
	}
	l.Quantity = quantity
	l.IncrementVersion()
	return nil
}

// BelongsTo reports whether the line is owned by the given user
func (l *LineItem) BelongsTo(userID uuid.UUID) bool {
	return l.UserID == userID
}
