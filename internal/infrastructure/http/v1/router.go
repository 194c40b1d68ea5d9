// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Zalint/MATA-sub002/internal/domain/reconcile"
	"github.com/Zalint/MATA-sub002/internal/infrastructure/cache"
	"github.com/Zalint/MATA-sub002/internal/infrastructure/http/v1/handlers"
	"github.com/Zalint/MATA-sub002/internal/infrastructure/http/v1/middleware"
	"github.com/Zalint/MATA-sub002/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection (for health checks; feeds read it
	// through FeedProvider)
	Pool *pgxpool.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for bearer-token validation
	JWTValidator middleware.TokenValidator

	// APIKey is the shared key for machine clients
	APIKey string

	// Engine is the reconciliation engine
	Engine *reconcile.Service

	// Feeds materializes the raw feeds per date
	Feeds handlers.FeedProvider

	// Cache memoizes assembled reports
	Cache *cache.ReportCache
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	// API v1
	apiV1 := router.Group("/api/v1")
	apiV1.Use(middleware.Auth(cfg.APIKey, cfg.JWTValidator))
	{
		baseHandler := handlers.NewBaseHandler()
		reconciliationHandler := handlers.NewReconciliationHandler(baseHandler, cfg.Feeds, cfg.Engine, cfg.Cache)
		reconciliationHandler.RegisterRoutes(apiV1.Group("/reconciliation"))
	}

	return router
}
