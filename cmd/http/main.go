package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"duka/manager/internal/config"
	"duka/manager/internal/handler"
	"duka/manager/internal/logger"
	"duka/manager/internal/repository"
	"duka/manager/internal/repository/sqlite"
	"duka/manager/internal/service"
	"duka/manager/internal/service/authprovider"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer appLogger.Sync()

	// 2. Setup storage
	ctx := context.Background()
	var store service.Store
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			appLogger.Fatal("Failed to open sqlite store", zap.Error(err))
		}
		defer db.Close()
		store = db
		appLogger.Info("Using sqlite store", zap.String("path", cfg.Storage.SQLitePath))
	default:
		dbPool, err := pgxpool.New(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			appLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer dbPool.Close()

		if err := dbPool.Ping(ctx); err != nil {
			appLogger.Fatal("Failed to ping database", zap.Error(err))
		}
		pg := repository.NewStore(dbPool)
		if err := pg.Migrate(ctx); err != nil {
			appLogger.Fatal("Failed to migrate database", zap.Error(err))
		}
		store = pg
		appLogger.Info("Connected to database")
	}

	// 3. Setup logic
	authClient := authprovider.NewClient(authprovider.Config{
		URL:      cfg.Auth.URL,
		APIKey:   cfg.Auth.APIKey,
		CacheTTL: cfg.Auth.CacheTTL,
	})

	h := handler.NewHandler(appLogger, authClient, handler.Services{
		Shops:     service.NewShopService(store, authClient, appLogger),
		Inventory: service.NewInventoryService(store, appLogger),
		Credits:   service.NewCreditService(store, appLogger),
		Expenses:  service.NewExpenseService(store, appLogger, cfg.Shop.Location, cfg.Shop.TOTRate),
		Reports:   service.NewReportService(store, cfg.Shop.Location, cfg.Shop.TOTRate),
	})

	// 4. Setup server
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 5. Run server with graceful shutdown
	go func() {
		appLogger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 2)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	appLogger.Info("Server exiting")
}
