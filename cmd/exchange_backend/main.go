package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/SscSPs/exchange_rates_app/cmd/docs"
	"github.com/SscSPs/exchange_rates_app/internal/adapters/database/pgsql"
	"github.com/SscSPs/exchange_rates_app/internal/catalog"
	"github.com/SscSPs/exchange_rates_app/internal/core/services"
	"github.com/SscSPs/exchange_rates_app/internal/handlers"
	"github.com/SscSPs/exchange_rates_app/internal/middleware"
	"github.com/SscSPs/exchange_rates_app/internal/platform/config"
	"github.com/SscSPs/exchange_rates_app/pkg/database"
	"github.com/gin-gonic/gin"
)

// @title Exchange Rates API
// @version 1.0
// @description Currency exchange rates, branch overrides and rate reservations.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Initialize structured logger
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
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	applied, err := database.RunMigrations(cfg.DatabaseURL, database.DefaultMigrationsPath)
	if err != nil {
		logger.Error("Database migrations failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}

	store := pgsql.NewStore(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, store, catalog.Default())

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
