package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/solemart/backend/internal/domain/cart"
	"github.com/solemart/backend/internal/domain/order"
	"github.com/solemart/backend/internal/domain/shared"
)

// OrderRepository implements order.Repository in memory
type OrderRepository struct {
	store *Store
}

var _ order.Repository = (*OrderRepository)(nil)

// Create persists a new order
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.orders[o.ID] = cloneOrder(o)
	return nil
}

// CreateAndClearCart persists the order and clears the user's cart.
// When the cart repository shares this store, both happen under one
// lock acquisition, so no reader ever sees both the new order and the
// old cart. A cart held elsewhere (a redis backend) is cleared through
// its own repository; the caller's per-user lock keeps the two writes
// from interleaving with other cart activity.
func (r *OrderRepository) CreateAndClearCart(ctx context.Context, o *order.Order, carts cart.Repository) error {
	if mc, ok := carts.(*CartRepository); ok && mc.store == r.store {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()

		r.store.orders[o.ID] = cloneOrder(o)
		r.store.deleteCartLocked(o.UserID)
		return nil
	}

	r.store.mu.Lock()
	r.store.orders[o.ID] = cloneOrder(o)
	r.store.mu.Unlock()

	return carts.DeleteByUser(ctx, o.UserID)
}

// FindByID finds an order by ID
func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	o, ok := r.store.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneOrder(o), nil
}

// FindByUser finds a user's orders matching the filter, paginated
func (r *OrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (shared.Paginated[*order.Order], error) {
	return r.findPage(filter, func(o *order.Order) bool { return o.UserID == userID })
}

// FindAll finds all orders matching the filter, paginated
func (r *OrderRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*order.Order], error) {
	return r.findPage(filter, func(o *order.Order) bool { return true })
}

// Save updates an existing order
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.orders[o.ID]; !ok {
		return shared.ErrNotFound
	}
	r.store.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *OrderRepository) findPage(filter shared.Filter, keep func(*order.Order) bool) (shared.Paginated[*order.Order], error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := make([]*order.Order, 0)
	for _, o := range r.store.orders {
		if !keep(o) {
			continue
		}
		if status, ok := filter.Filters["status"]; ok && string(o.Status) != status {
			continue
		}
		matched = append(matched, cloneOrder(o))
	}

	// newest first; ties on CreatedAt break on ID so pages stay stable
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	return shared.NewPaginated(matched[start:end], total, filter.Page, filter.PageSize), nil
}
