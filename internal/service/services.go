// Package service implements the storefront's business logic over the
// injected backing stores.
package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/pkrstore/storefront-backend/internal/storage"
	"github.com/pkrstore/storefront-backend/pkg/config"
)

// Services aggregates all services
type Services struct {
	Admin   *AdminService
	Catalog *CatalogService
	Orders  *OrderService
}

// NewServices creates all services. The session store is always
// present; durable is nil when the process runs without a database.
func NewServices(durable, session storage.Store, cfg *config.Config, logger *zap.Logger) *Services {
	opTimeout := time.Duration(cfg.Storage.MongoDB.OpTimeout) * time.Second
	return &Services{
		Admin:   NewAdminService(cfg, logger),
		Catalog: NewCatalogService(durable, session, opTimeout, logger),
		Orders:  NewOrderService(durable, session, opTimeout, logger),
	}
}
