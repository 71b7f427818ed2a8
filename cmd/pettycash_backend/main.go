package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"github.com/webemergencia/petty_cash_app/internal/adapters/cache"
	"github.com/webemergencia/petty_cash_app/internal/adapters/export"
	portssvc "github.com/webemergencia/petty_cash_app/internal/core/ports/services"
	"github.com/webemergencia/petty_cash_app/internal/core/services"
	"github.com/webemergencia/petty_cash_app/internal/handlers"
	"github.com/webemergencia/petty_cash_app/internal/middleware"
	"github.com/webemergencia/petty_cash_app/internal/platform/config"
	"github.com/webemergencia/petty_cash_app/internal/platform/metrics"
	"github.com/webemergencia/petty_cash_app/internal/repositories/database/pgsql"
	"github.com/webemergencia/petty_cash_app/pkg/database"
)

// @title Petty Cash Backend API
// @version 1.0
// @description Petty-cash ledger reconstruction and reporting service.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	if cfg.RunMigrations {
		logger.Info("Running database migrations...", slog.String("path", cfg.MigrationsPath))
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			logger.Error("Failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	metrics.Init()

	optionsCache, closeCache := newFilterOptionsCache(cfg, logger)
	defer closeCache()

	serviceContainer := services.NewServiceContainer(
		cfg,
		pgsql.NewRepositoryProvider(dbPool),
		optionsCache,
		export.NewXLSXExporter(),
		export.NewPDFExporter(),
	)

	exportLimiter, err := newExportLimiter(cfg.ExportRateLimit)
	if err != nil {
		logger.Error("Invalid export rate limit", slog.String("rate", cfg.ExportRateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		middleware.RequestMetricsMiddleware(),
		gin.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:  cfg.CORSAllowedOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders: []string{"Content-Disposition", middleware.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, exportLimiter)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// exports may take up to the report timeout to render
		WriteTimeout: cfg.ReportTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("Server stopped")
}

// newFilterOptionsCache returns a Redis-backed cache when REDIS_ADDR is set and
// reachable, and a no-op cache otherwise.
func newFilterOptionsCache(cfg *config.Config, logger *slog.Logger) (portssvc.FilterOptionsCache, func()) {
	if cfg.RedisAddr == "" {
		logger.Info("Redis not configured, filter options cache disabled")
		return cache.NoopFilterOptionsCache{}, func() {}
	}

	redisCache := cache.NewRedisFilterOptionsCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		logger.Warn("Redis unavailable, filter options cache disabled",
			slog.String("addr", cfg.RedisAddr), slog.String("error", err.Error()))
		_ = redisCache.Close()
		return cache.NoopFilterOptionsCache{}, func() {}
	}

	logger.Info("Filter options cache backed by Redis", slog.String("addr", cfg.RedisAddr))
	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			logger.Error("Error closing redis client", slog.String("error", err.Error()))
		}
	}
}

func newExportLimiter(formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	return limiter.New(memory.NewStore(), rate), nil
}
