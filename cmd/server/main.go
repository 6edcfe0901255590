package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/restaurant/backend/internal/application/catalog"
	inventoryapp "github.com/restaurant/backend/internal/application/inventory"
	planningapp "github.com/restaurant/backend/internal/application/planning"
	procurementapp "github.com/restaurant/backend/internal/application/procurement"
	receptionapp "github.com/restaurant/backend/internal/application/reception"
	"github.com/restaurant/backend/internal/infrastructure/config"
	"github.com/restaurant/backend/internal/infrastructure/logger"
	"github.com/restaurant/backend/internal/infrastructure/persistence"
	"github.com/restaurant/backend/internal/interfaces/http/handler"
	"github.com/restaurant/backend/internal/interfaces/http/middleware"
	"github.com/restaurant/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
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

	log.Info("Starting kitchen backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	// Initialize database with zap-backed gorm logger
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel,
		logger.WithSlowThreshold(200*time.Millisecond),
		logger.WithIgnoreRecordNotFoundError(true),
	)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	log.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.DBName),
	)

	// Initialize repositories
	itemRepo := persistence.NewGormInventoryItemRepository(db.DB)
	batchRepo := persistence.NewGormInventoryBatchRepository(db.DB)
	txRepo := persistence.NewGormInventoryTransactionRepository(db.DB)
	locationRepo := persistence.NewGormStorageLocationRepository(db.DB)
	recipeRepo := persistence.NewGormRecipeRepository(db.DB)
	planRepo := persistence.NewGormMenuPlanRepository(db.DB)
	procurementRepo := persistence.NewGormProcurementRepository(db.DB)
	receptionRepo := persistence.NewGormReceptionRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Initialize application services
	ledgerService := inventoryapp.NewStockLedgerService(itemRepo, batchRepo, txRepo, txScope)
	recipeService := planningapp.NewRecipeService(recipeRepo, productRepo, itemRepo)
	demandService := planningapp.NewDemandService(planRepo, recipeRepo, productRepo, itemRepo, batchRepo)
	planService := planningapp.NewPlanCommitService(planRepo, recipeRepo, productRepo, itemRepo, batchRepo, txScope)
	procurementService := procurementapp.NewProcurementService(procurementRepo, supplierRepo)
	receptionService := receptionapp.NewReceptionService(receptionRepo, supplierRepo, itemRepo, txScope)
	catalogService := catalogapp.NewCatalogService(productRepo, categoryRepo)

	// Initialize HTTP handlers
	inventoryHandler := handler.NewInventoryHandler(ledgerService, locationRepo)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	planningHandler := handler.NewPlanningHandler(demandService, planService)
	procurementHandler := handler.NewProcurementHandler(procurementService, demandService)
	receptionHandler := handler.NewReceptionHandler(receptionService)
	catalogHandler := handler.NewCatalogHandler(catalogService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.Operator())

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(inventoryHandler).
		Register(recipeHandler).
		Register(planningHandler).
		Register(procurementHandler).
		Register(receptionHandler).
		Register(catalogHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

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

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
