package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/vendora/seller-service/internal/config"
	"github.com/vendora/seller-service/internal/customer"
	"github.com/vendora/seller-service/internal/domain"
	handler "github.com/vendora/seller-service/internal/handler/http"
	"github.com/vendora/seller-service/internal/migrations"
	"github.com/vendora/seller-service/internal/repository/postgres"
	redisrepo "github.com/vendora/seller-service/internal/repository/redis"
	"github.com/vendora/seller-service/internal/service"
	"github.com/vendora/seller-service/pkg/database"
	"github.com/vendora/seller-service/pkg/health"
	"github.com/vendora/seller-service/pkg/httpclient"
	"github.com/vendora/seller-service/pkg/middleware"
	"github.com/vendora/seller-service/pkg/tracing"
)

// App wires together all dependencies and runs the seller service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	rdb        *redis.Client
	httpServer *http.Server

	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Tracing first so database spans during startup are captured.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "seller-service",
		ServiceVersion: cfg.ServiceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.String("database", cfg.PostgresDB),
	)

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	database.RegisterPoolMetrics(pool, "seller")
	database.SetSlowQueryLogging(time.Duration(cfg.SlowQueryMillis)*time.Millisecond, logger)

	rdb, err := database.NewRedisClient(ctx, cfg.Redis())
	if err != nil {
		// The settings cache is an optimization; run without it.
		logger.Warn("redis unavailable, settings cache disabled",
			slog.String("error", err.Error()),
		)
		rdb = nil
	}

	// Repositories.
	sellerRepo := postgres.NewSellerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	wishlistRepo := postgres.NewWishlistRepository(pool)

	var settings domain.SettingsRepository = postgres.NewSettingsRepository(pool)
	if rdb != nil {
		ttl := time.Duration(cfg.SettingsTTLSecs) * time.Second
		settings = redisrepo.NewSettingsCache(settings, rdb, ttl, logger)
	}

	sellerService := service.NewSellerService(
		sellerRepo,
		productRepo,
		reviewRepo,
		orderRepo,
		wishlistRepo,
		settings,
		service.NewMediaFormatter(cfg.MediaBaseURL),
		cfg.InHouseShopName,
		logger,
	)

	// Customer resolution.
	var resolver customer.Resolver = customer.HeaderResolver{}
	if cfg.UserServiceURL != "" {
		client := httpclient.New(httpclient.DefaultConfig())
		cbClient := httpclient.NewCircuitBreakerClient(client, httpclient.DefaultCircuitBreakerConfig("user-service"), logger)
		resolver = customer.NewUserServiceResolver(cbClient, cfg.UserServiceURL, logger)
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	if rdb != nil {
		healthHandler.RegisterNonCritical("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	router := handler.NewRouter(sellerService, resolver, healthHandler, logger, handler.RouterConfig{
		CORS:              middleware.CORSConfig{AllowedOrigins: cfg.CORSAllowedOrigins},
		PprofAllowedCIDRs: cfg.PprofAllowedCIDR,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		rdb:            rdb,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in reverse start order.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.pool.Close()

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
