package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/solemart/backend/internal/domain/catalog"
	"github.com/solemart/backend/internal/domain/shared"
	"github.com/solemart/backend/internal/domain/shared/valueobject"
)

// ProductService handles catalog business operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	price := valueobject.NewMoneyUSD(req.Price)
	product, err := catalog.NewProduct(req.Name, req.Description, price, catalog.Category(req.Category), req.Sizes, req.Colors)
	if err != nil {
		return nil, err
	}

	product.ImageURLs = req.ImageURLs
	product.Featured = req.Featured
	product.NewArrival = req.NewArrival
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if req.DiscountPercentage != 0 {
		update := catalog.ProductUpdate{DiscountPercentage: &req.DiscountPercentage}
		if err := product.ApplyUpdate(update); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ListProductsFilter) (shared.Paginated[ProductResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Category != "" {
		category := catalog.Category(filter.Category)
		if !category.IsValid() {
			return shared.Paginated[ProductResponse]{}, shared.NewDomainError("INVALID_INPUT", "Unknown product category")
		}
		domainFilter.Filters["category"] = string(category)
	}
	if filter.Featured != nil {
		domainFilter.Filters["featured"] = *filter.Featured
	}
	if filter.NewArrival != nil {
		domainFilter.Filters["new_arrival"] = *filter.NewArrival
	}

	page, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}

	items := make([]ProductResponse, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, ToProductResponse(p))
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// Update applies a partial update to a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update := catalog.ProductUpdate{
		Name:               req.Name,
		Description:        req.Description,
		ImageURLs:          req.ImageURLs,
		Sizes:              req.Sizes,
		Colors:             req.Colors,
		InStock:            req.InStock,
		Featured:           req.Featured,
		NewArrival:         req.NewArrival,
		DiscountPercentage: req.DiscountPercentage,
	}
	if req.Price != nil {
		price := valueobject.NewMoneyUSD(*req.Price)
		update.Price = &price
	}
	if req.Category != nil {
		category := catalog.Category(*req.Category)
		update.Category = &category
	}

	if err := product.ApplyUpdate(update); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product from the catalog.
// Cart lines referencing the product are left in place; they surface
// with a missing product on listing and fail checkout.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}
