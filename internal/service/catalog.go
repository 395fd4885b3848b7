package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pkrstore/storefront-backend/internal/domain"
	"github.com/pkrstore/storefront-backend/internal/storage"
)

// CatalogService handles product operations over the two backing
// stores. The session store is always present; the durable store is nil
// when the process runs memory-only. Mutations route by the
// identifier's store kind, listings merge both stores.
type CatalogService struct {
	durable   storage.Store // nil when no database is configured
	session   storage.Store
	opTimeout time.Duration
	logger    *zap.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(durable, session storage.Store, opTimeout time.Duration, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		durable:   durable,
		session:   session,
		opTimeout: opTimeout,
		logger:    logger.Named("catalog-service"),
	}
}

// Durable reports whether a durable store is connected.
func (s *CatalogService) Durable() bool {
	return s.durable != nil
}

// CreateProductRequest is the payload for Create.
type CreateProductRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// List returns durable products followed by session products. Once the
// durable store is live, seed items are dropped from the merge and a
// durable record wins any identifier collision.
func (s *CatalogService) List(ctx context.Context) ([]*domain.Product, error) {
	session, err := s.session.Products().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if s.durable == nil {
		return session, nil
	}

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	durable, err := s.durable.Products().GetAll(opCtx)
	if err != nil {
		return nil, err
	}

	seen := make(map[domain.TaggedID]bool, len(durable))
	for _, p := range durable {
		seen[p.ID] = true
	}

	merged := durable
	for _, p := range session {
		if p.ID.Kind == domain.KindSeed || seen[p.ID] {
			continue
		}
		merged = append(merged, p)
	}
	return merged, nil
}

// Create stores a new product, in stock by default. It goes to the
// durable store when one is connected, otherwise to the front of the
// session collection.
func (s *CatalogService) Create(ctx context.Context, req *CreateProductRequest) (*domain.Product, error) {
	if req.Price < 0 {
		return nil, storage.ErrInvalidInput
	}

	product := &domain.Product{
		Name:    req.Name,
		Price:   req.Price,
		Image:   req.Image,
		InStock: true,
	}

	if s.durable != nil {
		opCtx, cancel := s.withTimeout(ctx)
		defer cancel()
		if err := s.durable.Products().Create(opCtx, product); err != nil {
			return nil, err
		}
	} else {
		if err := s.session.Products().Create(ctx, product); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Product created",
		zap.String("id", product.ID.String()),
		zap.String("store", product.ID.Kind.String()),
	)
	return product, nil
}

// ToggleStock flips a product's inStock flag in the store its
// identifier names.
func (s *CatalogService) ToggleStock(ctx context.Context, id domain.TaggedID) (*domain.Product, error) {
	store, opCtx, cancel, err := s.storeFor(ctx, id)
	if err != nil {
		return nil, err
	}
	defer cancel()
	return store.ToggleStock(opCtx, id)
}

// Delete removes a product from the store its identifier names.
// Deleting an absent identifier is an error, not a no-op.
func (s *CatalogService) Delete(ctx context.Context, id domain.TaggedID) error {
	store, opCtx, cancel, err := s.storeFor(ctx, id)
	if err != nil {
		return err
	}
	defer cancel()
	if err := store.Delete(opCtx, id); err != nil {
		return err
	}

	s.logger.Info("Product deleted", zap.String("id", id.String()))
	return nil
}

// storeFor routes an identifier to its backing store. A durable-kind
// identifier without a connected durable store cannot name anything.
func (s *CatalogService) storeFor(ctx context.Context, id domain.TaggedID) (storage.ProductStore, context.Context, context.CancelFunc, error) {
	if id.Fallback() {
		return s.session.Products(), ctx, func() {}, nil
	}
	if s.durable == nil {
		return nil, nil, nil, storage.ErrNotFound
	}
	opCtx, cancel := s.withTimeout(ctx)
	return s.durable.Products(), opCtx, cancel, nil
}

func (s *CatalogService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opTimeout)
}
