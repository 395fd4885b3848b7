// Package storage defines the store interfaces shared by the durable
// (MongoDB) and session (in-memory) implementations.
package storage

import (
	"context"
	"errors"

	"github.com/pkrstore/storefront-backend/internal/domain"
)

// Common errors
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnavailable   = errors.New("storage unavailable")
	ErrTimeout       = errors.New("storage timeout")
)

// ProductStore defines the interface for product storage operations
type ProductStore interface {
	// Create stores a new product and assigns its identifier
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by identifier
	GetByID(ctx context.Context, id domain.TaggedID) (*domain.Product, error)

	// GetAll retrieves all products in the store's natural order
	GetAll(ctx context.Context) ([]*domain.Product, error)

	// ToggleStock flips a product's inStock flag and returns the result
	ToggleStock(ctx context.Context, id domain.TaggedID) (*domain.Product, error)

	// Delete removes a product; deleting an absent id is ErrNotFound
	Delete(ctx context.Context, id domain.TaggedID) error
}

// OrderStore defines the interface for order storage operations.
// Orders are write-once; there is no update or delete.
type OrderStore interface {
	// Create stores a new order and assigns its identifier
	Create(ctx context.Context, order *domain.Order) error

	// GetAll retrieves all orders, newest first
	GetAll(ctx context.Context) ([]*domain.Order, error)
}

// Store aggregates all storage interfaces
type Store interface {
	Products() ProductStore
	Orders() OrderStore

	// Close closes the storage connection
	Close() error

	// Ping checks if the storage is alive
	Ping(ctx context.Context) error
}
