package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/solemart/backend/internal/domain/cart"
	"github.com/solemart/backend/internal/domain/catalog"
	"github.com/solemart/backend/internal/domain/shared"
	"github.com/solemart/backend/internal/domain/shared/valueobject"
)

// CartService handles cart business operations
type CartService struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
	locks       *UserLocks
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.Repository, productRepo catalog.ProductRepository, locks *UserLocks) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		locks:       locks,
	}
}

// AddItem adds a product variant to the user's cart. If the user
// already has a line for the same (product, size, color), the new
// quantity is merged into it instead of creating a second line.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*LineItemResponse, error) {
	if req.Quantity < 1 {
		return nil, shared.ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.HasSize(req.Size) || !product.HasColor(req.Color) {
		return nil, shared.ErrInvalidVariant
	}

	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	existing, err := s.cartRepo.FindByVariant(ctx, userID, req.ProductID, req.Size, req.Color)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	var line *cart.LineItem
	if existing != nil {
		if err := existing.IncreaseQuantity(req.Quantity); err != nil {
			return nil, err
		}
		line = existing
	} else {
		line, err = cart.NewLineItem(userID, req.ProductID, req.Size, req.Color, req.Quantity)
		if err != nil {
			return nil, err
		}
	}

	if err := s.cartRepo.Save(ctx, line); err != nil {
		return nil, err
	}

	response := ToLineItemResponse(line, product)
	return &response, nil
}

// UpdateQuantity replaces the quantity of a cart line owned by the user
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, req UpdateQuantityRequest) (*LineItemResponse, error) {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	line, err := s.cartRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !line.BelongsTo(userID) {
		return nil, shared.ErrForbidden
	}
	if err := line.UpdateQuantity(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, line); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, line.ProductID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	response := ToLineItemResponse(line, product)
	return &response, nil
}

// RemoveItem deletes a cart line owned by the user
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	line, err := s.cartRepo.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if !line.BelongsTo(userID) {
		return shared.ErrForbidden
	}
	return s.cartRepo.Delete(ctx, line.ID)
}

// Clear removes every line from the user's cart. Clearing an empty
// cart is a no-op.
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	return s.cartRepo.DeleteByUser(ctx, userID)
}

// List returns the user's cart in insertion order with a
// server-computed total. Lines whose product was deleted are kept
// with a nil product and excluded from the total.
func (s *CartService) List(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	lines, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := valueobject.ZeroUSD()
	items := make([]LineItemResponse, 0, len(lines))
	for _, line := range lines {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				return nil, err
			}
			product = nil
		}
		items = append(items, ToLineItemResponse(line, product))
		if product != nil {
			total = total.MustAdd(product.EffectivePrice().MultiplyByInt(int64(line.Quantity)))
		}
	}

	return &CartResponse{Items: items, Total: total.StringFixed(2)}, nil
}
