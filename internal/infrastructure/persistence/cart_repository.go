package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/solemart/backend/internal/domain/cart"
	"github.com/solemart/backend/internal/domain/shared"
)

// GormCartRepository implements cart.Repository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

var _ cart.Repository = (*GormCartRepository)(nil)

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByID finds a cart line by its ID
func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.LineItem, error) {
	var item cart.LineItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByUser returns a user's cart lines in insertion order
func (r *GormCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*cart.LineItem, error) {
	var items []*cart.LineItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByVariant finds the user's line for an exact (product, size, color)
func (r *GormCartRepository) FindByVariant(ctx context.Context, userID, productID uuid.UUID, size, color string) (*cart.LineItem, error) {
	var item cart.LineItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND size = ? AND color = ?", userID, productID, size, color).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Save creates or updates a cart line
func (r *GormCartRepository) Save(ctx context.Context, item *cart.LineItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes a cart line
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&cart.LineItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByUser removes every line in a user's cart. Deleting an
// already empty cart is not an error.
func (r *GormCartRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&cart.LineItem{}, "user_id = ?", userID).Error
}
