package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/solemart/backend/internal/domain/catalog"
	"github.com/solemart/backend/internal/domain/shared"
)

// ProductRepository implements catalog.ProductRepository in memory
type ProductRepository struct {
	store *Store
}

var _ catalog.ProductRepository = (*ProductRepository)(nil)

// FindByID finds a product by its ID
func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	product, ok := r.store.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneProduct(product), nil
}

// FindAll finds products matching the filter, paginated
func (r *ProductRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := make([]*catalog.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		if !matches(p, filter) {
			continue
		}
		matched = append(matched, cloneProduct(p))
	}

	// newest first, matching the gorm backing's default ordering.
	// Timestamps can collide, so break ties on ID for a stable page order.
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

// Save creates or updates a product
func (r *ProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.products[product.ID] = cloneProduct(product)
	return nil
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.store.products, id)
	return nil
}

func matches(p *catalog.Product, filter shared.Filter) bool {
	if category, ok := filter.Filters["category"]; ok && string(p.Category) != category {
		return false
	}
	if featured, ok := filter.Filters["featured"]; ok && p.Featured != featured {
		return false
	}
	if newArrival, ok := filter.Filters["new_arrival"]; ok && p.NewArrival != newArrival {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	return true
}
