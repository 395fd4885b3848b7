// Package memory implements the in-process session store. It backs the
// whole service when no database is configured and always carries the
// seed/demo products and any records created while running without a
// durable store. Contents are lost on restart.
package memory

import (
	"context"
	"sync"

	"github.com/pkrstore/storefront-backend/internal/domain"
	"github.com/pkrstore/storefront-backend/internal/storage"
)

// Store implements an in-memory storage
type Store struct {
	products *ProductStore
	orders   *OrderStore
}

// NewStore creates a new in-memory store. When seedDemo is set the
// product collection starts with the demonstration items.
func NewStore(seedDemo bool) *Store {
	s := &Store{
		products: &ProductStore{},
		orders:   &OrderStore{},
	}
	if seedDemo {
		s.products.items = seedProducts()
	}
	return s
}

func (s *Store) Products() storage.ProductStore { return s.products }
func (s *Store) Orders() storage.OrderStore     { return s.orders }
func (s *Store) Close() error                   { return nil }
func (s *Store) Ping(ctx context.Context) error { return nil }

// seedProducts returns the demonstration catalog. Seed identifiers carry
// the seed marker so mutations on them route back here even when a
// durable store is configured.
func seedProducts() []*domain.Product {
	return []*domain.Product{
		{
			ID:      domain.NewSeedID("1"),
			Name:    "Luxury Chronograph",
			Price:   45000,
			Image:   "https://images.unsplash.com/photo-1547996160-81dfa63595dd?w=800&q=80",
			InStock: true,
		},
		{
			ID:      domain.NewSeedID("2"),
			Name:    "Premium Audio Pro",
			Price:   32000,
			Image:   "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=800&q=80",
			InStock: true,
		},
		{
			ID:      domain.NewSeedID("3"),
			Name:    "Smart Flagship S24 Pro",
			Price:   185000,
			Image:   "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=800&q=80",
			InStock: false,
		},
	}
}

// ProductStore implements in-memory product storage. Created items are
// prepended, so listing is most-recent-first.
type ProductStore struct {
	mu    sync.RWMutex
	items []*domain.Product
}

func (s *ProductStore) Create(ctx context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.ID.IsZero() {
		product.ID = domain.NewSessionID()
	}
	for _, p := range s.items {
		if p.ID == product.ID {
			return storage.ErrAlreadyExists
		}
	}
	copied := *product
	s.items = append([]*domain.Product{&copied}, s.items...)
	return nil
}

func (s *ProductStore) GetByID(ctx context.Context, id domain.TaggedID) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.items {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *ProductStore) GetAll(ctx context.Context) ([]*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]*domain.Product, 0, len(s.items))
	for _, p := range s.items {
		copied := *p
		products = append(products, &copied)
	}
	return products, nil
}

func (s *ProductStore) ToggleStock(ctx context.Context, id domain.TaggedID) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.items {
		if p.ID == id {
			p.InStock = !p.InStock
			copied := *p
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *ProductStore) Delete(ctx context.Context, id domain.TaggedID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.items {
		if p.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

// OrderStore implements in-memory order storage, most-recent-first.
type OrderStore struct {
	mu    sync.RWMutex
	items []*domain.Order
}

func (s *OrderStore) Create(ctx context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order.ID.IsZero() {
		order.ID = domain.NewSessionID()
	}
	copied := *order
	s.items = append([]*domain.Order{&copied}, s.items...)
	return nil
}

func (s *OrderStore) GetAll(ctx context.Context) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]*domain.Order, 0, len(s.items))
	for _, o := range s.items {
		copied := *o
		orders = append(orders, &copied)
	}
	return orders, nil
}
