package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"adscheck/internal/cache"
	"adscheck/internal/cache/outcomeCache"
	"adscheck/internal/check"
	"adscheck/internal/config"
	"adscheck/internal/fetcher"
	"adscheck/internal/http"
	"adscheck/internal/logger"
	"adscheck/internal/models"
	"adscheck/internal/parser"
	"adscheck/internal/provider/google"
	"adscheck/internal/provider/meta"
	"adscheck/internal/ratelimit"
	"adscheck/internal/resolver"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection for logging
	db, err := logger.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer db.Close()

	// Initialize logger
	appLogger := logger.NewDatabaseLogger(db)
	defer appLogger.Close()

	// Create internal log event for startup
	startupCtx := logger.WithLogEvent(context.Background(), logger.NewInternalLogEvent())

	appLogger.LogInfo(startupCtx, logger.OpServerStart, "Starting Ads Checker API", map[string]interface{}{
		"version": "1.0.0",
		"config": map[string]interface{}{
			"port":       cfg.Port,
			"cache_type": cfg.CacheType,
			"cache_ttl":  cfg.CacheTTL.Seconds(),
			"meta_token": cfg.MetaAccessToken != "",
		},
	})

	// Initialize cache and outcome cache
	cacheService, err := initializeCache(cfg)
	if err != nil {
		appLogger.LogError(
			startupCtx,
			"cache_init",
			"",
			"Failed to initialize cache",
			err,
			models.LogSeverityHigh,
			nil,
		)
		log.Fatalf("Failed to initialize cache: %v", err)
	}

	// Initialize outcome cache
	outcomes := outcomeCache.New(cacheService, cfg.CacheTTL)

	// Initialize components
	pageParser := parser.NewParser()
	pageFetcher := fetcher.NewHTTPFetcher(cfg.FetchTimeout)

	metaProvider := meta.NewProvider(pageFetcher, pageParser, appLogger, cfg.MetaAccessToken)
	googleProvider := google.NewProvider(pageFetcher, pageParser, appLogger)
	identityResolver := resolver.NewResolver(metaProvider, appLogger)

	rateLimiter := ratelimit.NewTwoTierRateLimiter(
		cfg.GlobalRateLimitPerSec,
		cfg.GlobalRateLimitPerSec,
		cfg.PerIPRateLimitPerSec,
		cfg.PerIPRateLimitPerSec,
	)

	// Initialize service
	checkService := check.NewService(
		identityResolver,
		metaProvider,
		googleProvider,
		outcomes,
		appLogger,
		cfg.DetectTimeout,
	)

	// Initialize HTTP handler
	handler := http.NewHandler(checkService, appLogger)

	// Initialize server
	addr := ":" + cfg.Port
	server := http.NewServer(
		addr,
		handler,
		appLogger,
		rateLimiter,
		cfg.ServerReadTimeout,
		cfg.ServerWriteTimeout,
	)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			appLogger.LogError(
				context.Background(),
				logger.OpServerStart,
				"",
				"Server failed to start",
				err,
				models.LogSeverityHigh,
				map[string]interface{}{"addr": addr},
			)
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	fmt.Printf("🚀 Ads Checker API server started on %s\n", addr)
	fmt.Println("📋 Available endpoints:")
	fmt.Println("  GET  /health       - Health check")
	fmt.Println("  POST /api/check    - Check ads activity for a domain / Facebook page")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n🛑 Shutting down server...")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(ctx); err != nil {
		appLogger.LogError(
			ctx,
			logger.OpServerShutdown,
			"",
			"Server shutdown error",
			err,
			models.LogSeverityMedium,
			nil,
		)
		log.Printf("Server shutdown error: %v", err)
	} else {
		appLogger.LogInfo(ctx, logger.OpServerShutdown, "Server shutdown completed successfully", nil)
		fmt.Println("✅ Server shutdown completed")
	}
}

func initializeCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.CacheType {
	case "redis":
		return cache.NewRedisCache(cfg.RedisURL)
	case "memory":
		return cache.NewMemoryCache(), nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.CacheType)
	}
}
