package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/solemart/backend/internal/domain/catalog"
	"github.com/solemart/backend/internal/domain/shared"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll finds products matching the filter, paginated
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	query := r.db.WithContext(ctx).Model(&catalog.Product{})

	if category, ok := filter.Filters["category"]; ok {
		query = query.Where("category = ?", category)
	}
	if featured, ok := filter.Filters["featured"]; ok {
		query = query.Where("featured = ?", featured)
	}
	if newArrival, ok := filter.Filters["new_arrival"]; ok {
		query = query.Where("new_arrival = ?", newArrival)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*catalog.Product]{}, err
	}

	var products []*catalog.Product
	if err := query.
		Order(orderClause(filter)).
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&products).Error; err != nil {
		return shared.Paginated[*catalog.Product]{}, err
	}

	return shared.NewPaginated(products, total, filter.Page, filter.PageSize), nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete removes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// orderClause builds a safe ORDER BY clause from the filter
func orderClause(filter shared.Filter) string {
	column := "created_at"
	switch filter.OrderBy {
	case "created_at", "updated_at", "name", "price":
		column = filter.OrderBy
	}
	dir := "desc"
	if filter.OrderDir == "asc" {
		dir = "asc"
	}
	return column + " " + dir
}
