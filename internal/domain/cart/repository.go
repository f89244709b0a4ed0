package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence interface for cart lines.
// FindByUser returns lines in insertion order.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LineItem, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*LineItem, error)
	FindByVariant(ctx context.Context, userID, productID uuid.UUID, size, color string) (*LineItem, error)
	Save(ctx context.Context, item *LineItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
