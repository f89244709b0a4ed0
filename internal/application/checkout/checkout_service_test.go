package checkout

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appcart "github.com/solemart/backend/internal/application/cart"
	"github.com/solemart/backend/internal/domain/cart"
	"github.com/solemart/backend/internal/domain/catalog"
	"github.com/solemart/backend/internal/domain/order"
	"github.com/solemart/backend/internal/domain/shared"
	"github.com/solemart/backend/internal/domain/shared/valueobject"
	"github.com/solemart/backend/internal/infrastructure/persistence/memory"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateAndClearCart(ctx context.Context, o *order.Order, carts cart.Repository) error {
	args := m.Called(ctx, o, carts)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (shared.Paginated[*order.Order], error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(shared.Paginated[*order.Order]), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*order.Order], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*order.Order]), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

// MockCartRepository is a mock implementation of cart.Repository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.LineItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.LineItem), args.Error(1)
}

func (m *MockCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*cart.LineItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cart.LineItem), args.Error(1)
}

func (m *MockCartRepository) FindByVariant(ctx context.Context, userID, productID uuid.UUID, size, color string) (*cart.LineItem, error) {
	args := m.Called(ctx, userID, productID, size, color)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.LineItem), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, item *cart.LineItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

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

func newProduct(t *testing.T, name, price string, discount int) *catalog.Product {
	t.Helper()
	money, err := valueobject.NewMoneyUSDFromString(price)
	require.NoError(t, err)
	product, err := catalog.NewProduct(name, "", money, catalog.CategoryMen, []string{"42"}, []string{"black"})
	require.NoError(t, err)
	product.DiscountPercentage = discount
	return product
}

func TestCheckoutServicePlaceOrder(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("freezes effective prices and clears cart atomically", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewCheckoutService(orderRepo, cartRepo, productRepo, appcart.NewUserLocks())

		boot := newProduct(t, "Boot", "50.00", 10)     // effective 45.00
		sneaker := newProduct(t, "Sneaker", "30.00", 0) // effective 30.00
		line1, err := cart.NewLineItem(userID, boot.ID, "42", "black", 2)
		require.NoError(t, err)
		line2, err := cart.NewLineItem(userID, sneaker.ID, "42", "black", 1)
		require.NoError(t, err)

		cartRepo.On("FindByUser", ctx, userID).Return([]*cart.LineItem{line1, line2}, nil)
		productRepo.On("FindByID", ctx, boot.ID).Return(boot, nil)
		productRepo.On("FindByID", ctx, sneaker.ID).Return(sneaker, nil)
		orderRepo.On("CreateAndClearCart", ctx, mock.AnythingOfType("*order.Order"), cartRepo).Return(nil)

		resp, err := service.PlaceOrder(ctx, userID, PlaceOrderRequest{ShippingAddress: "1 Main St"})
		require.NoError(t, err)
		assert.Equal(t, string(order.StatusPending), resp.Status)
		assert.Equal(t, "120.00", resp.TotalAmount)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "45.00", resp.Items[0].UnitPrice)
		assert.Equal(t, "90.00", resp.Items[0].Subtotal)
		orderRepo.AssertExpectations(t)
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		cartRepo := new(MockCartRepository)
		service := NewCheckoutService(orderRepo, cartRepo, new(MockProductRepository), appcart.NewUserLocks())

		cartRepo.On("FindByUser", ctx, userID).Return([]*cart.LineItem{}, nil)

		_, err := service.PlaceOrder(ctx, userID, PlaceOrderRequest{ShippingAddress: "1 Main St"})
		assert.ErrorIs(t, err, shared.ErrEmptyCart)
		orderRepo.AssertNotCalled(t, "CreateAndClearCart", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deleted product fails checkout", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewCheckoutService(orderRepo, cartRepo, productRepo, appcart.NewUserLocks())

		productID := uuid.New()
		line, err := cart.NewLineItem(userID, productID, "42", "black", 1)
		require.NoError(t, err)

		cartRepo.On("FindByUser", ctx, userID).Return([]*cart.LineItem{line}, nil)
		productRepo.On("FindByID", ctx, productID).Return(nil, shared.ErrNotFound)

		_, err = service.PlaceOrder(ctx, userID, PlaceOrderRequest{ShippingAddress: "1 Main St"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		orderRepo.AssertNotCalled(t, "CreateAndClearCart", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("clears a cart held in a separate backend", func(t *testing.T) {
		orderStore := memory.NewStore()
		cartStore := memory.NewStore()
		productRepo := new(MockProductRepository)
		service := NewCheckoutService(orderStore.Orders(), cartStore.Carts(), productRepo, appcart.NewUserLocks())

		boot := newProduct(t, "Boot", "50.00", 0)
		productRepo.On("FindByID", ctx, boot.ID).Return(boot, nil)

		line, err := cart.NewLineItem(userID, boot.ID, "42", "black", 1)
		require.NoError(t, err)
		require.NoError(t, cartStore.Carts().Save(ctx, line))

		resp, err := service.PlaceOrder(ctx, userID, PlaceOrderRequest{ShippingAddress: "1 Main St"})
		require.NoError(t, err)

		lines, err := cartStore.Carts().FindByUser(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, lines)

		found, err := orderStore.Orders().FindByID(ctx, resp.ID)
		require.NoError(t, err)
		assert.Len(t, found.Items, 1)
	})

	t.Run("blank address is rejected", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		cartRepo := new(MockCartRepository)
		service := NewCheckoutService(orderRepo, cartRepo, new(MockProductRepository), appcart.NewUserLocks())

		line, err := cart.NewLineItem(userID, uuid.New(), "42", "black", 1)
		require.NoError(t, err)
		cartRepo.On("FindByUser", ctx, userID).Return([]*cart.LineItem{line}, nil)

		_, err = service.PlaceOrder(ctx, userID, PlaceOrderRequest{ShippingAddress: "  "})
		assert.Error(t, err)
	})
}

func TestCheckoutServiceGetOrder(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	existing, err := order.NewOrder(userID, "1 Main St")
	require.NoError(t, err)

	t.Run("owner reads own order", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewCheckoutService(orderRepo, new(MockCartRepository), new(MockProductRepository), appcart.NewUserLocks())

		orderRepo.On("FindByID", ctx, existing.ID).Return(existing, nil)
		resp, err := service.GetOrder(ctx, userID, existing.ID, false)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, resp.ID)
	})

	t.Run("foreign order reads as not found", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewCheckoutService(orderRepo, new(MockCartRepository), new(MockProductRepository), appcart.NewUserLocks())

		orderRepo.On("FindByID", ctx, existing.ID).Return(existing, nil)
		_, err := service.GetOrder(ctx, uuid.New(), existing.ID, false)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("admin reads any order", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewCheckoutService(orderRepo, new(MockCartRepository), new(MockProductRepository), appcart.NewUserLocks())

		orderRepo.On("FindByID", ctx, existing.ID).Return(existing, nil)
		resp, err := service.GetOrder(ctx, uuid.New(), existing.ID, true)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, resp.ID)
	})
}

func TestCheckoutServiceUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("valid transition", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewCheckoutService(orderRepo, new(MockCartRepository), new(MockProductRepository), appcart.NewUserLocks())

		o, err := order.NewOrder(uuid.New(), "1 Main St")
		require.NoError(t, err)
		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		orderRepo.On("Save", ctx, o).Return(nil)

		resp, err := service.UpdateStatus(ctx, o.ID, UpdateStatusRequest{Status: "processing"})
		require.NoError(t, err)
		assert.Equal(t, "processing", resp.Status)
	})

	t.Run("illegal transition", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewCheckoutService(orderRepo, new(MockCartRepository), new(MockProductRepository), appcart.NewUserLocks())

		o, err := order.NewOrder(uuid.New(), "1 Main St")
		require.NoError(t, err)
		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

		_, err = service.UpdateStatus(ctx, o.ID, UpdateStatusRequest{Status: "delivered"})
		assert.Error(t, err)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown status filter on list", func(t *testing.T) {
		service := NewCheckoutService(new(MockOrderRepository), new(MockCartRepository), new(MockProductRepository), appcart.NewUserLocks())
		_, err := service.ListAllOrders(ctx, ListOrdersFilter{Status: "bogus"})
		assert.Error(t, err)
	})
}
