package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/receiptly/receipt_management_app/cmd/docs"
	portssvc "github.com/receiptly/receipt_management_app/internal/core/ports/services"
	"github.com/receiptly/receipt_management_app/internal/middleware"
	"github.com/receiptly/receipt_management_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public routes: login and the OAuth callback Google redirects to.
	registerAuthRoutes(r, services.Auth)
	registerDriveCallbackRoute(r, cfg, services.Drive)

	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the authenticated /api/v1 group.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1",
		middleware.RateLimit(newRateLimiter(cfg.RateLimitSpec)),
		middleware.AuthMiddleware(cfg.JWTSecret),
	)

	registerReceiptRoutes(v1, services.Receipt)
	registerCategoryRoutes(v1, services.Category)
	registerReportRoutes(v1, services.Report)
	registerSettingsRoutes(v1, services.Settings)
	registerExchangeRateRoutes(v1, services.Rate)
	registerInvoiceRoutes(v1, services.Invoice)
	registerExtractionRoutes(v1, services.Extraction)
	registerDriveRoutes(v1, services.Drive)
	registerDashboardRoutes(v1, services.Dashboard)
}

// newRateLimiter builds an in-memory per-IP limiter from a spec like "120-M".
func newRateLimiter(spec string) *limiter.Limiter {
	rate, err := limiter.NewRateFromFormatted(spec)
	if err != nil {
		rate = limiter.Rate{Period: time.Minute, Limit: 120}
	}
	return limiter.New(memory.NewStore(), rate)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		// no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
