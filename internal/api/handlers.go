package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pkrstore/storefront-backend/internal/domain"
	"github.com/pkrstore/storefront-backend/internal/service"
	"github.com/pkrstore/storefront-backend/internal/storage"
)

// Handlers aggregates all HTTP handlers
type Handlers struct {
	services *service.Services
	logger   *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(services *service.Services, logger *zap.Logger) *Handlers {
	return &Handlers{
		services: services,
		logger:   logger.Named("handlers"),
	}
}

// Status handles the /api/status endpoint
func (h *Handlers) Status(c *gin.Context) {
	c.JSON(200, StatusResponse{
		Version: Version,
		DB:      h.services.Catalog.Durable(),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles admin login. Failures return the same generic message
// regardless of which field was wrong.
func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(401, gin.H{"msg": "Invalid credentials"})
		return
	}

	token, err := h.services.Admin.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(401, gin.H{"msg": "Invalid credentials"})
		return
	}

	c.JSON(200, gin.H{"token": token})
}

// ListProducts returns the merged catalog, public.
func (h *Handlers) ListProducts(c *gin.Context) {
	products, err := h.services.Catalog.List(c.Request.Context())
	if err != nil {
		h.storageError(c, err)
		return
	}
	c.JSON(200, products)
}

// CreateProduct adds a catalog item, admin only.
func (h *Handlers) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"message": err.Error()})
		return
	}

	product, err := h.services.Catalog.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidInput) {
			c.JSON(400, gin.H{"message": "Invalid product"})
			return
		}
		h.storageError(c, err)
		return
	}
	c.JSON(200, product)
}

// ToggleStock flips a product's inStock flag, admin only.
func (h *Handlers) ToggleStock(c *gin.Context) {
	id := domain.ParseID(c.Param("id"))

	product, err := h.services.Catalog.ToggleStock(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(404, gin.H{"message": "Product not found"})
			return
		}
		h.storageError(c, err)
		return
	}
	c.JSON(200, product)
}

// DeleteProduct removes a product, admin only. An unknown identifier is
// 404, never a silent success.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id := domain.ParseID(c.Param("id"))

	if err := h.services.Catalog.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(404, gin.H{"message": "Product not found"})
			return
		}
		h.storageError(c, err)
		return
	}
	c.JSON(200, gin.H{"msg": "Deleted"})
}

// CreateOrder handles public order intake.
func (h *Handlers) CreateOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"message": err.Error()})
		return
	}

	order, err := h.services.Orders.Create(c.Request.Context(), &req)
	if err != nil {
		h.storageError(c, err)
		return
	}
	c.JSON(200, order)
}

// ListOrders returns all orders, admin only.
func (h *Handlers) ListOrders(c *gin.Context) {
	orders, err := h.services.Orders.List(c.Request.Context())
	if err != nil {
		h.storageError(c, err)
		return
	}
	c.JSON(200, orders)
}

// storageError translates storage failures at the request boundary.
// Durable-store trouble is surfaced as 503 rather than silently
// degrading to the session store: the caller cannot observe a lost
// durability guarantee, so it must not be hidden.
func (h *Handlers) storageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrTimeout):
		h.logger.Error("Storage timeout", zap.Error(err))
		c.JSON(503, gin.H{"message": "Storage timeout"})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(404, gin.H{"message": "Not found"})
	default:
		h.logger.Error("Storage failure", zap.Error(err))
		c.JSON(503, gin.H{"message": "Storage unavailable"})
	}
}
