package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/storefront/shop-api/internal/api/handler"
	"github.com/storefront/shop-api/internal/api/middleware"
	"github.com/storefront/shop-api/internal/core/ports"
)

// Dependencies holds everything the HTTP layer needs. Services are built in
// cmd/api so the router stays free of storage concerns.
type Dependencies struct {
	Log         zerolog.Logger
	Tokens      ports.TokenVerifier
	Users       ports.UserFinder
	Auth        ports.AuthService
	Orders      ports.OrderService
	Categories  ports.CategoryService
	Products    ports.ProductService
	Limiter     *middleware.IPRateLimiter
	ServiceName string
	Tracing     bool
	// Registerer receives the HTTP metrics; nil means the default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds the Echo instance with global middleware and every
// business route under /api/v1.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "storefront",
		Registerer: deps.Registerer,
	}))
	if deps.Tracing {
		e.Use(otelecho.Middleware(deps.ServiceName))
	}

	signIn := middleware.RequireSignIn(deps.Tokens, deps.Log)
	admin := middleware.RequireAdmin(deps.Users, deps.Log)

	authHandler := handler.NewAuthHandler(deps.Auth, deps.Log)
	orderHandler := handler.NewOrderHandler(deps.Orders, deps.Log)
	categoryHandler := handler.NewCategoryHandler(deps.Categories, deps.Log)
	productHandler := handler.NewProductHandler(deps.Products, deps.Log)

	v1 := e.Group("/api/v1")

	// --- Accounts and orders ---
	auth := v1.Group("/auth")
	var limited []echo.MiddlewareFunc
	if deps.Limiter != nil {
		limited = append(limited, deps.Limiter.Middleware())
	}
	auth.POST("/register", authHandler.Register, limited...)
	auth.POST("/login", authHandler.Login, limited...)
	auth.POST("/forgot-password", authHandler.ForgotPassword, limited...)
	auth.GET("/user-auth", authHandler.UserAuth, signIn)
	auth.GET("/admin-auth", authHandler.AdminAuth, signIn, admin)
	auth.PUT("/profile", authHandler.UpdateProfile, signIn)
	auth.GET("/get-users", authHandler.ListUsers, signIn, admin)

	auth.GET("/orders", orderHandler.ListOwn, signIn)
	auth.GET("/all-orders", orderHandler.ListAll, signIn, admin)
	auth.PUT("/order-status/:orderId", orderHandler.UpdateStatus, signIn, admin)

	// --- Catalog ---
	category := v1.Group("/category")
	category.POST("/create-category", categoryHandler.Create, signIn, admin)
	category.PUT("/update-category/:id", categoryHandler.Update, signIn, admin)
	category.GET("/get-category", categoryHandler.List)
	category.GET("/single-category/:slug", categoryHandler.Get)
	category.DELETE("/delete-category/:id", categoryHandler.Delete, signIn, admin)

	product := v1.Group("/product")
	product.POST("/create-product", productHandler.Create, signIn, admin)
	product.PUT("/update-product/:pid", productHandler.Update, signIn, admin)
	product.DELETE("/delete-product/:pid", productHandler.Delete, signIn, admin)
	product.GET("/get-product", productHandler.Latest)
	product.GET("/get-product/:slug", productHandler.Get)
	product.POST("/product-filters", productHandler.Filter)
	product.GET("/product-count", productHandler.Count)
	product.GET("/product-list/:page", productHandler.Page)
	product.GET("/search/:keyword", productHandler.Search)
	product.GET("/related-product/:pid/:cid", productHandler.Related)
	product.GET("/product-category/:slug", productHandler.ByCategory)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
