package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pkrstore/storefront-backend/internal/domain"
	"github.com/pkrstore/storefront-backend/internal/storage"
)

// FulfillmentSurcharge is the flat fee added to the submitted product
// price to compute an order's total.
const FulfillmentSurcharge = 300

// OrderService handles order intake and the admin-only listing. Orders
// are write-once.
type OrderService struct {
	durable   storage.Store // nil when no database is configured
	session   storage.Store
	opTimeout time.Duration
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(durable, session storage.Store, opTimeout time.Duration, logger *zap.Logger) *OrderService {
	return &OrderService{
		durable:   durable,
		session:   session,
		opTimeout: opTimeout,
		logger:    logger.Named("order-service"),
	}
}

// CreateOrderRequest is the public order-intake payload. Beyond the
// price being a number, fields are stored as submitted.
type CreateOrderRequest struct {
	CustomerName string  `json:"customerName"`
	Address      string  `json:"address"`
	Phone        string  `json:"phone"`
	City         string  `json:"city"`
	ProductName  string  `json:"productName"`
	ProductPrice float64 `json:"productPrice"`
}

// Create stores a new order with the fulfillment surcharge applied and
// returns it synchronously.
func (s *OrderService) Create(ctx context.Context, req *CreateOrderRequest) (*domain.Order, error) {
	order := &domain.Order{
		CustomerName: req.CustomerName,
		Address:      req.Address,
		Phone:        req.Phone,
		City:         req.City,
		ProductName:  req.ProductName,
		TotalPrice:   req.ProductPrice + FulfillmentSurcharge,
		Date:         time.Now(),
	}

	if s.durable != nil {
		opCtx, cancel := s.withTimeout(ctx)
		defer cancel()
		if err := s.durable.Orders().Create(opCtx, order); err != nil {
			return nil, err
		}
	} else {
		if err := s.session.Orders().Create(ctx, order); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Order created",
		zap.String("id", order.ID.String()),
		zap.Float64("total_price", order.TotalPrice),
	)
	return order, nil
}

// List returns durable orders newest-first, followed by session orders.
func (s *OrderService) List(ctx context.Context) ([]*domain.Order, error) {
	session, err := s.session.Orders().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if s.durable == nil {
		return session, nil
	}

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	durable, err := s.durable.Orders().GetAll(opCtx)
	if err != nil {
		return nil, err
	}
	return append(durable, session...), nil
}

func (s *OrderService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opTimeout)
}
