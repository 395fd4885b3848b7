// Package server assembles the gin router: routes, middleware, and the
// single-page frontend catch-all.
package server

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pkrstore/storefront-backend/internal/api"
	"github.com/pkrstore/storefront-backend/internal/service"
	"github.com/pkrstore/storefront-backend/pkg/config"
	"github.com/pkrstore/storefront-backend/pkg/middleware"
)

// NewRouter builds the HTTP router. It is used both by the server entry
// point and by tests and external hosts that drive the handler chain
// without binding a listener.
func NewRouter(cfg *config.Config, services *service.Services, logger *zap.Logger) *gin.Engine {
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	handlers := api.NewHandlers(services, logger)
	adminGate := middleware.AdminAuth(services.Admin, logger)

	router.GET("/api/status", handlers.Status)

	// Login is reachable at both paths; older frontends used the bare one.
	router.POST("/api/admin/login", handlers.Login)
	router.POST("/admin/login", handlers.Login)

	router.GET("/api/products", handlers.ListProducts)
	router.POST("/api/products", adminGate, handlers.CreateProduct)
	router.PATCH("/api/products/:id/stock", adminGate, handlers.ToggleStock)
	router.DELETE("/api/products/:id", adminGate, handlers.DeleteProduct)

	router.POST("/api/orders", handlers.CreateOrder)
	router.GET("/api/orders", adminGate, handlers.ListOrders)

	// Any unmatched GET outside /api serves the single-page frontend.
	index := filepath.Join(cfg.Server.WebRoot, "index.html")
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodGet && !strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.File(index)
			return
		}
		c.JSON(404, gin.H{"message": "Not found"})
	})

	return router
}
