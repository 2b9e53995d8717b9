package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/printshop-api/internal/config"
	domainRepo "github.com/sangkips/printshop-api/internal/domain/repository"
	"github.com/sangkips/printshop-api/internal/presentation/http/handler"
	"github.com/sangkips/printshop-api/internal/presentation/http/middleware"
	"github.com/sangkips/printshop-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Product         *handler.ProductHandler
	Customer        *handler.CustomerHandler
	FinancialConfig *handler.FinancialConfigHandler
	Calculator      *handler.CalculatorHandler
	Vehicle         *handler.VehicleHandler
	Quote           *handler.QuoteHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: requestsPerSecond(deps.Cfg.RateLimit),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "ok",
			"service":    deps.Cfg.App.Name,
			"rate_limit": rateLimiter.Stats(),
		})
	})

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func requestsPerSecond(cfg config.RateLimitConfig) float64 {
	if cfg.Duration <= 0 {
		return float64(cfg.Requests)
	}
	return float64(cfg.Requests) / float64(cfg.Duration)
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idem := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}

	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", middleware.Idempotency(idem), h.Product.Create)
		products.POST("/price-preview", h.Product.PricePreview)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}

	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", middleware.Idempotency(idem), h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}

	protected.GET("/financial-config", h.FinancialConfig.Get)
	protected.PUT("/financial-config", h.FinancialConfig.Update)

	calculators := protected.Group("/calculators")
	{
		calculators.POST("/sticker", h.Calculator.Sticker)
		calculators.POST("/laser", h.Calculator.Laser)
		calculators.POST("/vehicle", h.Calculator.Vehicle)
		calculators.POST("/standard", h.Calculator.Standard)
	}

	vehicles := protected.Group("/vehicles")
	{
		vehicles.POST("/estimate", h.Vehicle.Estimate)
		vehicles.POST("/panels/selectable", h.Vehicle.SelectablePanels)
	}

	quotes := protected.Group("/quotes")
	{
		quotes.GET("", h.Quote.List)
		quotes.POST("", middleware.IdempotencyRequired(idem), h.Quote.Create)
		quotes.POST("/review", h.Quote.Review)
		quotes.GET("/board", h.Quote.Board)
		quotes.GET("/reference/:reference", h.Quote.GetByReference)
		quotes.GET("/:id", h.Quote.Get)
		quotes.DELETE("/:id", h.Quote.Delete)
		quotes.PUT("/:id/status", h.Quote.UpdateStatus)
		quotes.GET("/:id/indicators", h.Quote.Indicators)
		quotes.GET("/:id/export", h.Quote.Export)
		quotes.POST("/:id/pitch", h.Quote.Pitch)
	}
}
