package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/printshop-api/internal/application/service"
	"github.com/sangkips/printshop-api/internal/config"
	"github.com/sangkips/printshop-api/internal/infrastructure/database"
	"github.com/sangkips/printshop-api/internal/infrastructure/repository"
	"github.com/sangkips/printshop-api/internal/presentation/http/handler"
	"github.com/sangkips/printshop-api/internal/presentation/http/middleware"
	"github.com/sangkips/printshop-api/internal/presentation/http/routes"
	"github.com/sangkips/printshop-api/pkg/assistant"
	"github.com/sangkips/printshop-api/pkg/logger"
	"github.com/sangkips/printshop-api/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zl, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.EnvFileErr != nil {
		zl.Info("no .env file loaded, using environment", zap.Error(cfg.EnvFileErr))
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Open(&cfg.Database, cfg.App.Debug, zl)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db, zl); err != nil {
		zl.Fatal("failed to run migrations", zap.Error(err))
	}

	// Seed default data
	if err := database.SeedDefaultData(db, cfg.Pricing.MachineHourRate, zl); err != nil {
		zl.Warn("failed to seed default data", zap.Error(err))
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	configRepo := repository.NewFinancialConfigRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	estimator, generator, err := assistant.NewFromConfig(cfg.Assistant.Provider)
	if err != nil {
		zl.Warn("assistant disabled", zap.Error(err))
		estimator, generator = assistant.NewNullEstimator(), assistant.NewNullGenerator()
	}

	// Initialize services
	configService := service.NewFinancialConfigService(configRepo, cfg.Pricing.MachineHourRate)
	productService := service.NewProductService(productRepo, configService)
	customerService := service.NewCustomerService(customerRepo)
	calculatorService := service.NewCalculatorService(productRepo, configService)
	quoteService := service.NewQuoteService(quoteRepo, productRepo, customerRepo, configService, calculatorService, cfg.Quote.FinalizeTimeout)
	vehicleService := service.NewVehicleService(estimator)
	pitchService := service.NewPitchService(quoteService, generator)
	exportService := service.NewExportService(quoteService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Product:         handler.NewProductHandler(productService),
		Customer:        handler.NewCustomerHandler(customerService),
		FinancialConfig: handler.NewFinancialConfigHandler(configService),
		Calculator:      handler.NewCalculatorHandler(calculatorService),
		Vehicle:         handler.NewVehicleHandler(vehicleService),
		Quote:           handler.NewQuoteHandler(quoteService, pitchService, exportService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          zl,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go middleware.PurgeExpiredKeys(ctx, idempotencyRepo, time.Hour, zl)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("starting server",
			zap.String("name", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
