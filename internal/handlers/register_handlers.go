package handlers

import (
	"log/slog"

	"github.com/SscSPs/exchange_rates_app/cmd/docs"
	portssvc "github.com/SscSPs/exchange_rates_app/internal/core/ports/services"
	"github.com/SscSPs/exchange_rates_app/internal/middleware"
	"github.com/SscSPs/exchange_rates_app/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerValidators()
	r.Use(cors.New(corsConfig(cfg)))

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the public /api/v1 routes and the
// token-protected /api/v1/admin group.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	var createLimit gin.HandlerFunc
	if cfg.ReservationRateLimit != "" {
		l, err := middleware.NewIPLimiter(cfg.ReservationRateLimit)
		if err != nil {
			slog.Warn("Reservation rate limit disabled", slog.String("error", err.Error()))
		} else {
			createLimit = middleware.RateLimit(l)
		}
	}

	registerPublicRateRoutes(v1, service.Rates)
	registerPublicBranchRoutes(v1, service.Branch)
	registerPublicReservationRoutes(v1, service.Reservation, createLimit)

	admin := v1.Group("/admin", middleware.AuthMiddleware(cfg.JWTSecret))
	registerAdminRateRoutes(admin, service.Rates, service.Upload, cfg.MaxUploadBytes)
	registerCurrencyRoutes(admin, service.Currency)
	registerAdminBranchRoutes(admin, service.Branch)
	registerAdminReservationRoutes(admin, service.Reservation)
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	c.ExposeHeaders = []string{"Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	if len(cfg.CORSAllowedOrigins) == 0 || (len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return c
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
