package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pkrstore/storefront-backend/internal/api"
	"github.com/pkrstore/storefront-backend/internal/server"
	"github.com/pkrstore/storefront-backend/internal/service"
	"github.com/pkrstore/storefront-backend/internal/storage"
	"github.com/pkrstore/storefront-backend/internal/storage/memory"
	"github.com/pkrstore/storefront-backend/internal/storage/mongodb"
	"github.com/pkrstore/storefront-backend/pkg/config"
	"github.com/pkrstore/storefront-backend/pkg/logging"
)

var (
	configFile = flag.String("config", "configs/config.yaml", "Path to configuration file")
	version    = "dev"
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	api.Version = version

	logger.Info("Starting Storefront Backend",
		zap.String("version", version),
		zap.String("storage", cfg.Storage.Type),
	)

	// The session store is always present: it carries the seed products
	// and all records created while running without a database.
	session := memory.NewStore(cfg.Storage.SeedDemoEnabled())

	// Durable storage is resolved once at startup. An unreachable
	// database is fatal; there is no silent degradation to memory.
	var durable storage.Store
	if cfg.DurableConfigured() {
		ctx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.Storage.MongoDB.Timeout)*time.Second)
		durable, err = mongodb.NewStore(ctx, &cfg.Storage.MongoDB)
		cancel()
		if err != nil {
			logger.Fatal("Failed to initialize durable storage", zap.Error(err))
		}
		defer func() { _ = durable.Close() }()
		logger.Info("Durable storage connected",
			zap.String("database", cfg.Storage.MongoDB.Database))
	}

	services := service.NewServices(durable, session, cfg, logger)
	router := server.NewRouter(cfg, services, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// With the listener disabled the router is left to an external host;
	// the process just waits for a signal.
	if !cfg.Server.Serve() {
		logger.Info("HTTP listener disabled")
		<-quit
		logger.Info("Server exited")
		return
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server listening", zap.String("address", cfg.Server.Address()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
