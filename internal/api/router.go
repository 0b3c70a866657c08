package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/savemypet/storefront/internal/api/handler"
	"github.com/savemypet/storefront/internal/api/middleware"
	"github.com/savemypet/storefront/internal/core/domain"
	"github.com/savemypet/storefront/internal/core/ports"
	"github.com/savemypet/storefront/internal/core/service"
	"github.com/savemypet/storefront/internal/infrastructure/config"
	"github.com/savemypet/storefront/internal/infrastructure/db/sqlite"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Business routes live under /api; the root keeps the health probes and the
// Prometheus scrape endpoint.
func NewRouter(db *sql.DB, gateway ports.PaymentGateway, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := sqlite.NewUserRepository(db)
	productRepo := sqlite.NewProductRepository(db)
	orderRepo := sqlite.NewOrderRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	reportRepo := sqlite.NewReportRepository(db)

	accountService := service.NewAccountService(userRepo, activityRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	catalogService := service.NewCatalogService(productRepo, activityRepo, log)
	orderService := service.NewOrderService(orderRepo, activityRepo, log)
	reportService := service.NewReportService(reportRepo, log)
	paymentService := service.NewPaymentService(gateway, log)

	authHandler := handler.NewAuthHandler(accountService)
	userHandler := handler.NewUserHandler(accountService)
	productHandler := handler.NewProductHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	reportHandler := handler.NewReportHandler(reportService)
	activityHandler := handler.NewActivityHandler(activityRepo)
	healthHandler := handler.NewHealthHandler(db)

	authRequired := middleware.Auth(cfg.JWTSecret)
	staffOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleSuperAdmin)
	superadminOnly := middleware.RBAC(domain.RoleSuperAdmin)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)       // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – is the store reachable?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Public routes ---
	public := e.Group("/api")
	public.POST("/signup", authHandler.Signup)
	public.POST("/login", authHandler.Login)
	public.GET("/products", productHandler.List)
	public.GET("/products/:id", productHandler.Get)

	// --- Authenticated routes (any role) ---
	auth := e.Group("/api", authRequired)
	auth.GET("/user/profile", authHandler.Profile)
	auth.PUT("/user/profile", authHandler.UpdateProfile)
	auth.GET("/user/orders", orderHandler.ListMine)
	auth.GET("/user/orders/:id", orderHandler.GetMine)
	auth.POST("/orders", orderHandler.Create)
	auth.GET("/verify-payment/:reference", paymentHandler.Verify)
	auth.GET("/users/:id", userHandler.Get)

	// --- Staff routes (admin and superadmin) ---
	staff := e.Group("/api", authRequired, staffOnly)
	staff.GET("/orders", orderHandler.List)
	staff.GET("/orders/:id", orderHandler.Get)
	staff.PUT("/orders/:id/status", orderHandler.UpdateStatus)
	staff.GET("/dashboard", reportHandler.Dashboard)
	staff.GET("/stock", reportHandler.Stock)

	// --- Superadmin routes ---
	super := e.Group("/api", authRequired, superadminOnly)
	super.POST("/products", productHandler.Create)
	super.PUT("/products/:id", productHandler.Update)
	super.DELETE("/products/:id", productHandler.Delete)
	super.GET("/metrics", reportHandler.Metrics)
	super.GET("/metrics/categories", reportHandler.Categories)
	super.GET("/metrics/revenue-details", reportHandler.RevenueDetails)
	super.GET("/metrics/monthly-revenue", reportHandler.MonthlyRevenue)
	super.GET("/users", userHandler.List)
	super.POST("/users", userHandler.Create)
	super.DELETE("/users/:id", userHandler.Delete)
	super.GET("/activity-logs", activityHandler.Latest)

	return e
}
