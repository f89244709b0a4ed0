package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/solemart/backend/internal/domain/cart"
	"github.com/solemart/backend/internal/domain/shared"
)

// CartRepository implements cart.Repository in memory
type CartRepository struct {
	store *Store
}

var _ cart.Repository = (*CartRepository)(nil)

// FindByID finds a cart line by its ID
func (r *CartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.LineItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	line, ok := r.store.carts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneLineItem(line), nil
}

// FindByUser returns a user's cart lines in insertion order
func (r *CartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*cart.LineItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	lines := make([]*cart.LineItem, 0)
	for _, line := range r.store.carts {
		if line.UserID == userID {
			lines = append(lines, cloneLineItem(line))
		}
	}
	sort.Slice(lines, func(i, j int) bool {
		return r.store.cartSeq[lines[i].ID] < r.store.cartSeq[lines[j].ID]
	})
	return lines, nil
}

// FindByVariant finds the user's line for an exact (product, size, color)
func (r *CartRepository) FindByVariant(ctx context.Context, userID, productID uuid.UUID, size, color string) (*cart.LineItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, line := range r.store.carts {
		if line.UserID == userID && line.ProductID == productID && line.Size == size && line.Color == color {
			return cloneLineItem(line), nil
		}
	}
	return nil, shared.ErrNotFound
}

// Save creates or updates a cart line
func (r *CartRepository) Save(ctx context.Context, item *cart.LineItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.cartSeq[item.ID]; !ok {
		r.store.nextSeq++
		r.store.cartSeq[item.ID] = r.store.nextSeq
	}
	r.store.carts[item.ID] = cloneLineItem(item)
	return nil
}

// Delete removes a cart line
func (r *CartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.carts[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.store.carts, id)
	delete(r.store.cartSeq, id)
	return nil
}

// DeleteByUser removes every line in a user's cart. Deleting an
// already empty cart is not an error.
func (r *CartRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.deleteCartLocked(userID)
	return nil
}

// deleteCartLocked removes a user's cart lines. Caller must hold mu.
func (s *Store) deleteCartLocked(userID uuid.UUID) {
	for id, line := range s.carts {
		if line.UserID == userID {
			delete(s.carts, id)
			delete(s.cartSeq, id)
		}
	}
}
