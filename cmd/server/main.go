package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appsync "github.com/shopsync/backend/internal/application/sync"
	"github.com/shopsync/backend/internal/infrastructure/config"
	"github.com/shopsync/backend/internal/infrastructure/logger"
	"github.com/shopsync/backend/internal/infrastructure/persistence"
	"github.com/shopsync/backend/internal/interfaces/http/handler"
	"github.com/shopsync/backend/internal/interfaces/http/middleware"
	"github.com/shopsync/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ShopSync Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	inventoryRepo := persistence.NewGormInventoryRepository(db.DB)
	connectorRepo := persistence.NewGormConnectorRepository(db.DB)

	// Initialize application services
	syncService := appsync.NewSyncService(
		orderRepo,
		inventoryRepo,
		connectorRepo,
		cfg.Sync,
		cfg.Shopify,
		logger.Named(log, "sync"),
	)

	// Initialize handlers
	syncHandler := handler.NewSyncHandler(syncService)
	connectorHandler := handler.NewConnectorHandler(connectorRepo)
	systemHandler := handler.NewSystemHandler(db)

	// Configure gin
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Sync runs are expensive upstream calls; keep the ceiling low.
	rateLimiter := middleware.NewRateLimiter(60, time.Minute)
	engine.Use(middleware.RateLimit(rateLimiter))

	// Register routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	syncRoutes := router.NewDomainGroup("sync", "/sync")
	syncRoutes.POST("/orders", syncHandler.SyncOrders)
	syncRoutes.POST("/refresh", syncHandler.RefreshStatuses)
	syncRoutes.POST("/inventory", syncHandler.SyncInventory)

	connectorRoutes := router.NewDomainGroup("connectors", "/connectors")
	connectorRoutes.GET("", connectorHandler.List)
	connectorRoutes.POST("", connectorHandler.Create)
	connectorRoutes.GET("/:store_url", connectorHandler.Get)
	connectorRoutes.PUT("/:store_url", connectorHandler.Update)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)

	r.Register(syncRoutes).
		Register(connectorRoutes).
		Register(systemRoutes)

	r.Setup()

	// Health probe outside the versioned API group
	engine.GET("/health", systemHandler.Health)

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
