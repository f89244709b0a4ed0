package checkout

import (
	"context"

	"github.com/google/uuid"

	appcart "github.com/solemart/backend/internal/application/cart"
	"github.com/solemart/backend/internal/domain/cart"
	"github.com/solemart/backend/internal/domain/catalog"
	"github.com/solemart/backend/internal/domain/order"
	"github.com/solemart/backend/internal/domain/shared"
)

// CheckoutService converts carts into orders and manages the order
// lifecycle. It shares the per-user lock table with the cart service
// so checkout never interleaves with cart writes for the same user.
type CheckoutService struct {
	orderRepo   order.Repository
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
	locks       *appcart.UserLocks
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(orderRepo order.Repository, cartRepo cart.Repository, productRepo catalog.ProductRepository, locks *appcart.UserLocks) *CheckoutService {
	return &CheckoutService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		locks:       locks,
	}
}

// PlaceOrder converts the user's entire cart into a pending order.
// Unit prices are frozen at the current effective price; client-sent
// totals are never trusted. The order insert and the cart clear
// happen atomically.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID uuid.UUID, req PlaceOrderRequest) (*OrderResponse, error) {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	lines, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, shared.ErrEmptyCart
	}

	o, err := order.NewOrder(userID, req.ShippingAddress)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if err := o.AddLine(product.ID, product.Name, line.Size, line.Color, line.Quantity, product.EffectivePrice()); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.CreateAndClearCart(ctx, o, s.cartRepo); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// GetOrder retrieves an order. Non-admin callers can only read their
// own orders; foreign orders come back as not found rather than
// confirming they exist.
func (s *CheckoutService) GetOrder(ctx context.Context, userID, orderID uuid.UUID, isAdmin bool) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.UserID != userID {
		return nil, shared.ErrNotFound
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// ListOrders returns the caller's orders, newest first
func (s *CheckoutService) ListOrders(ctx context.Context, userID uuid.UUID, filter ListOrdersFilter) (shared.Paginated[OrderResponse], error) {
	domainFilter, err := buildFilter(filter)
	if err != nil {
		return shared.Paginated[OrderResponse]{}, err
	}
	page, err := s.orderRepo.FindByUser(ctx, userID, domainFilter)
	if err != nil {
		return shared.Paginated[OrderResponse]{}, err
	}
	return toResponsePage(page), nil
}

// ListAllOrders returns every order in the store (admin only)
func (s *CheckoutService) ListAllOrders(ctx context.Context, filter ListOrdersFilter) (shared.Paginated[OrderResponse], error) {
	domainFilter, err := buildFilter(filter)
	if err != nil {
		return shared.Paginated[OrderResponse]{}, err
	}
	page, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[OrderResponse]{}, err
	}
	return toResponsePage(page), nil
}

// UpdateStatus transitions an order through its lifecycle (admin only)
func (s *CheckoutService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.TransitionTo(order.Status(req.Status)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

func buildFilter(filter ListOrdersFilter) (shared.Filter, error) {
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
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		status := order.Status(filter.Status)
		if !status.IsValid() {
			return shared.Filter{}, shared.NewDomainError("INVALID_INPUT", "Unknown order status")
		}
		domainFilter.Filters["status"] = string(status)
	}
	return domainFilter, nil
}

func toResponsePage(page shared.Paginated[*order.Order]) shared.Paginated[OrderResponse] {
	items := make([]OrderResponse, 0, len(page.Items))
	for _, o := range page.Items {
		items = append(items, ToOrderResponse(o))
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
}
