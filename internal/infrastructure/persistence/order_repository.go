package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/solemart/backend/internal/domain/cart"
	"github.com/solemart/backend/internal/domain/order"
	"github.com/solemart/backend/internal/domain/shared"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

var _ order.Repository = (*GormOrderRepository)(nil)

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create persists a new order with its lines
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

// CreateAndClearCart persists the order and deletes the user's cart
// lines. When the cart lives in the same database both happen in one
// transaction, so either both succeed or neither does. A cart backed
// by another store (a redis backend) is cleared through its own
// repository after the insert; the caller's per-user lock keeps the
// two writes from interleaving with other cart activity.
func (r *GormOrderRepository) CreateAndClearCart(ctx context.Context, o *order.Order, carts cart.Repository) error {
	if _, ok := carts.(*GormCartRepository); ok {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(o).Error; err != nil {
				return err
			}
			return tx.Delete(&cart.LineItem{}, "user_id = ?", o.UserID).Error
		})
	}

	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		return err
	}
	return carts.DeleteByUser(ctx, o.UserID)
}

// FindByID finds an order with its lines
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByUser finds a user's orders matching the filter, paginated
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (shared.Paginated[*order.Order], error) {
	return r.findPage(ctx, filter, r.db.WithContext(ctx).Model(&order.Order{}).Where("user_id = ?", userID))
}

// FindAll finds all orders matching the filter, paginated
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*order.Order], error) {
	return r.findPage(ctx, filter, r.db.WithContext(ctx).Model(&order.Order{}))
}

// Save updates an existing order
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *GormOrderRepository) findPage(ctx context.Context, filter shared.Filter, query *gorm.DB) (shared.Paginated[*order.Order], error) {
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*order.Order]{}, err
	}

	var orders []*order.Order
	if err := query.
		Preload("Items").
		Order("created_at desc").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&orders).Error; err != nil {
		return shared.Paginated[*order.Order]{}, err
	}

	return shared.NewPaginated(orders, total, filter.Page, filter.PageSize), nil
}
