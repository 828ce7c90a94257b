package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mwallace/shopfront/internal"
	"github.com/mwallace/shopfront/internal/catalog"
	"github.com/mwallace/shopfront/internal/events"
	"github.com/mwallace/shopfront/internal/handler/storefront"
	"github.com/mwallace/shopfront/internal/middleware"
	"github.com/mwallace/shopfront/internal/router"
	"github.com/mwallace/shopfront/internal/routes"
	"github.com/mwallace/shopfront/internal/service"
	"github.com/mwallace/shopfront/internal/telemetry"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize business metrics
	business := telemetry.NewBusinessMetrics(prometheus.DefaultRegisterer, "shopfront")

	// Initialize inventory service client
	logger.Info("Initializing inventory client...", "base_url", cfg.Inventory.BaseURL)
	inventory, err := catalog.NewClient(catalog.ClientConfig{
		BaseURL: cfg.Inventory.BaseURL,
		Timeout: cfg.Inventory.Timeout,
		Logger:  logger,
		Metrics: business,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize inventory client: %w", err)
	}

	// Catalog reads go through the cache; writes (purchases) go straight
	// to the client.
	cache := catalog.NewCache(catalog.CacheConfig{
		Source:  inventory,
		TTL:     cfg.Catalog.TTL,
		Logger:  logger,
		Metrics: business,
	})

	// Cross-replica invalidation over NATS, when configured
	var publisher service.InvalidationPublisher
	if cfg.NATS.URL != "" {
		logger.Info("Connecting to NATS...", "url", cfg.NATS.URL)
		bus, err := events.Connect(cfg.NATS.URL, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer bus.Close()

		if _, err := bus.SubscribeInvalidations(cache); err != nil {
			return fmt.Errorf("failed to subscribe to catalog invalidations: %w", err)
		}
		publisher = bus
	} else {
		logger.Info("NATS_URL not set, catalog invalidation is local only")
	}

	// Initialize session registry and its janitor
	sessions := service.NewSessionStore(cfg.Session.TTL, logger)
	go sessions.RunCleanup(ctx, cfg.Session.CleanupInterval)

	// Initialize purchase orchestrator
	purchases := service.NewPurchaseService(service.PurchaseConfig{
		Inventory:   inventory,
		Invalidator: cache,
		Publisher:   publisher,
		Metrics:     business,
		Logger:      logger,
	})

	// ==========================================================================
	// Build route dependencies
	// ==========================================================================

	storefrontDeps := routes.StorefrontDeps{
		ProductHandler:  storefront.NewProductHandler(cache, business),
		CartHandler:     storefront.NewCartHandler(sessions, cache, business, cfg.SecureCookies()),
		PurchaseHandler: storefront.NewPurchaseHandler(purchases, cache),
	}

	// ==========================================================================
	// Initialize middleware
	// ==========================================================================

	// Initialize Prometheus HTTP metrics
	metrics := middleware.NewMetrics("shopfront")

	// Configure security headers
	securityConfig := middleware.DefaultSecurityHeadersConfig()
	if cfg.Env == "dev" {
		securityConfig.ContentSecurityPolicy = ""
		securityConfig.HSTSMaxAge = 0 // Disable HSTS in development
	}

	// Configure rate limiting
	defaultRateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	defer defaultRateLimiter.Stop()

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		middleware.WithRequestLogger(logger),
		metrics.Middleware,
		middleware.SecurityHeaders(securityConfig),
		router.CORS(cfg.CORSOrigins),
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		middleware.Timeout(middleware.DefaultTimeout),
		defaultRateLimiter.Middleware,
		router.Logger(logger),
	)

	// Storefront bundle, when served from this process
	if cfg.StaticDir != "" {
		r.Static("/static/", cfg.StaticDir)
	}

	// Metrics endpoint (protect via firewall in production)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	routes.RegisterStorefrontRoutes(r, storefrontDeps)

	// ==========================================================================
	// Start server
	// ==========================================================================

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting storefront gateway", "address", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
