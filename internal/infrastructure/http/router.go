package http

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/storefront/shop-api/internal/infrastructure/http/handlers"
)

// RegisterOpsRoutes mounts the unauthenticated operational endpoints:
// probes, Prometheus scrape and the Swagger UI.
func RegisterOpsRoutes(e *echo.Echo, checks map[string]handlers.CheckFunc) {
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(checks)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
