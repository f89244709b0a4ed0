package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/solemart/backend/internal/domain/catalog"
	"github.com/solemart/backend/internal/domain/shared"
	"github.com/solemart/backend/internal/domain/shared/valueobject"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*catalog.Product]), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestProductServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid product", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		service := NewProductService(repo)
		resp, err := service.Create(ctx, CreateProductRequest{
			Name:               "Leather Boot",
			Price:              decimal.NewFromFloat(89.99),
			Category:           "men",
			Sizes:              []string{"41", "42"},
			Colors:             []string{"black"},
			DiscountPercentage: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, "89.99", resp.Price)
		assert.Equal(t, "80.99", resp.EffectivePrice)
		assert.True(t, resp.InStock)
		repo.AssertExpectations(t)
	})

	t.Run("unknown category", func(t *testing.T) {
		service := NewProductService(new(MockProductRepository))
		_, err := service.Create(ctx, CreateProductRequest{
			Name: "Boot", Price: decimal.NewFromInt(10), Category: "hats",
			Sizes: []string{"42"}, Colors: []string{"black"},
		})
		assert.Error(t, err)
	})

	t.Run("missing option sets", func(t *testing.T) {
		service := NewProductService(new(MockProductRepository))
		_, err := service.Create(ctx, CreateProductRequest{
			Name: "Boot", Price: decimal.NewFromInt(10), Category: "men",
			Colors: []string{"black"},
		})
		assert.Error(t, err)

		_, err = service.Create(ctx, CreateProductRequest{
			Name: "Boot", Price: decimal.NewFromInt(10), Category: "men",
			Sizes: []string{"42"},
		})
		assert.Error(t, err)
	})
}

func TestProductServiceList(t *testing.T) {
	ctx := context.Background()

	t.Run("passes category filter through", func(t *testing.T) {
		repo := new(MockProductRepository)
		price, err := valueobject.NewMoneyUSDFromString("10.00")
		require.NoError(t, err)
		product, err := catalog.NewProduct("Slipper", "", price, catalog.CategorySlippers, []string{"40"}, []string{"grey"})
		require.NoError(t, err)

		repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters["category"] == "slippers" && f.Page == 1 && f.PageSize == 20
		})).Return(shared.NewPaginated([]*catalog.Product{product}, 1, 1, 20), nil)

		page, err := NewProductService(repo).List(ctx, ListProductsFilter{Category: "slippers"})
		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.Equal(t, int64(1), page.Total)
	})

	t.Run("rejects unknown category filter", func(t *testing.T) {
		_, err := NewProductService(new(MockProductRepository)).List(ctx, ListProductsFilter{Category: "hats"})
		assert.Error(t, err)
	})
}

func TestProductServiceUpdate(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProductRepository)
	price, err := valueobject.NewMoneyUSDFromString("50.00")
	require.NoError(t, err)
	product, err := catalog.NewProduct("Boot", "old", price, catalog.CategoryMen, []string{"42"}, []string{"black"})
	require.NoError(t, err)

	repo.On("FindByID", ctx, product.ID).Return(product, nil)
	repo.On("Save", ctx, product).Return(nil)

	name := "Winter Boot"
	newPrice := decimal.NewFromFloat(59.99)
	resp, err := NewProductService(repo).Update(ctx, product.ID, UpdateProductRequest{
		Name: &name, Price: &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, "Winter Boot", resp.Name)
	assert.Equal(t, "59.99", resp.Price)
	assert.Equal(t, "old", resp.Description)
}

func TestProductServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("existing product", func(t *testing.T) {
		repo := new(MockProductRepository)
		price, err := valueobject.NewMoneyUSDFromString("10.00")
		require.NoError(t, err)
		product, err := catalog.NewProduct("Boot", "", price, catalog.CategoryMen, []string{"42"}, []string{"black"})
		require.NoError(t, err)

		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Delete", ctx, product.ID).Return(nil)

		require.NoError(t, NewProductService(repo).Delete(ctx, product.ID))
		repo.AssertExpectations(t)
	})

	t.Run("missing product", func(t *testing.T) {
		repo := new(MockProductRepository)
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		assert.ErrorIs(t, NewProductService(repo).Delete(ctx, id), shared.ErrNotFound)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
