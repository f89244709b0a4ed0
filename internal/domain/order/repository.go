package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/solemart/backend/internal/domain/cart"
	"github.com/solemart/backend/internal/domain/shared"
)

// Repository defines the persistence interface for orders.
// CreateAndClearCart persists the order and removes the user's cart
// lines from the given cart repository as one unit. Implementations
// sharing storage with the cart repository do both under a single
// transaction or lock; otherwise the caller's per-user lock is the
// serialization boundary.
type Repository interface {
	Create(ctx context.Context, order *Order) error
	CreateAndClearCart(ctx context.Context, order *Order, carts cart.Repository) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (shared.Paginated[*Order], error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*Order], error)
	Save(ctx context.Context, order *Order) error
}
