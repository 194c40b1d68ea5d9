// Package main is the entry point for the MATA reconciliation API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Zalint/MATA-sub002/internal/domain/auth"
	"github.com/Zalint/MATA-sub002/internal/domain/catalog"
	"github.com/Zalint/MATA-sub002/internal/domain/reconcile"
	"github.com/Zalint/MATA-sub002/internal/infrastructure/cache"
	v1 "github.com/Zalint/MATA-sub002/internal/infrastructure/http/v1"
	"github.com/Zalint/MATA-sub002/internal/infrastructure/storage/postgres"
	"github.com/Zalint/MATA-sub002/internal/infrastructure/storage/postgres/feed_repo"
	"github.com/Zalint/MATA-sub002/pkg/logger"
)

func main() {
	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting mata reconciliation server")

	// --- Database connection ---
	dsn := mustEnv("DATABASE_URL")
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	// --- Feed repository ---
	feedRepo := feed_repo.NewFeedRepo(pool.Unwrap())

	// --- Reconciliation engine ---
	// Site classification and the price catalog are injected configuration:
	// the engine itself carries no mutable global state.
	classifier := catalog.NewClassifier(getEnvList("SLAUGHTERHOUSE_SITES", []string{"abattage"}))
	knownSites := getEnvList("KNOWN_SITES", nil)
	engine := reconcile.NewService(catalog.DefaultPriceCatalog(), classifier, knownSites)

	// --- Report cache ---
	reportCache, err := cache.NewReportCache(getEnvDuration("REPORT_CACHE_TTL", cache.DefaultTTL))
	if err != nil {
		log.Fatalw("failed to create report cache", "error", err)
	}
	log.Infow("report cache initialized", "ttl", getEnvDuration("REPORT_CACHE_TTL", cache.DefaultTTL))

	// --- Auth ---
	jwtSecret := getEnv("JWT_SECRET", "your-secret-key-change-in-production")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))
	apiKey := getEnv("API_KEY", "")
	if apiKey == "" {
		log.Warn("API_KEY not set, machine-client authentication disabled")
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:         pool.Unwrap(),
		Logger:       log,
		JWTValidator: jwtService,
		APIKey:       apiKey,
		Engine:       engine,
		Feeds:        feedRepo,
		Cache:        reportCache,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
