// Package memory provides a mutex-guarded in-memory implementation of
// every repository. It is the default backing for development and the
// reference implementation the gorm and redis backings must match.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/solemart/backend/internal/domain/cart"
	"github.com/solemart/backend/internal/domain/catalog"
	"github.com/solemart/backend/internal/domain/identity"
	"github.com/solemart/backend/internal/domain/order"
)

// Store holds all in-memory state behind one mutex so that the order
// repository can create an order and clear a cart atomically.
type Store struct {
	mu sync.RWMutex

	products map[uuid.UUID]*catalog.Product
	carts    map[uuid.UUID]*cart.LineItem
	orders   map[uuid.UUID]*order.Order
	users    map[uuid.UUID]*identity.User

	// cartSeq preserves insertion order for cart listings
	cartSeq map[uuid.UUID]uint64
	nextSeq uint64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		products: make(map[uuid.UUID]*catalog.Product),
		carts:    make(map[uuid.UUID]*cart.LineItem),
		orders:   make(map[uuid.UUID]*order.Order),
		users:    make(map[uuid.UUID]*identity.User),
		cartSeq:  make(map[uuid.UUID]uint64),
	}
}

// Products returns the product repository backed by this store
func (s *Store) Products() *ProductRepository {
	return &ProductRepository{store: s}
}

// Carts returns the cart repository backed by this store
func (s *Store) Carts() *CartRepository {
	return &CartRepository{store: s}
}

// Orders returns the order repository backed by this store
func (s *Store) Orders() *OrderRepository {
	return &OrderRepository{store: s}
}

// Users returns the user repository backed by this store
func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

func cloneProduct(p *catalog.Product) *catalog.Product {
	c := *p
	c.ImageURLs = append([]string(nil), p.ImageURLs...)
	c.Sizes = append([]string(nil), p.Sizes...)
	c.Colors = append([]string(nil), p.Colors...)
	return &c
}

func cloneLineItem(l *cart.LineItem) *cart.LineItem {
	c := *l
	return &c
}

func cloneOrder(o *order.Order) *order.Order {
	c := *o
	c.Items = append([]order.LineItem(nil), o.Items...)
	return &c
}

func cloneUser(u *identity.User) *identity.User {
	c := *u
	return &c
}
