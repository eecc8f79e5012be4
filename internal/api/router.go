package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/wellnest/wellness-api/docs"
	"github.com/wellnest/wellness-api/internal/api/handler"
	"github.com/wellnest/wellness-api/internal/api/middleware"
	"github.com/wellnest/wellness-api/internal/core/ports"
)

// Dependencies are the services and probes the router wires into handlers.
type Dependencies struct {
	AuthService      ports.AuthService
	MetricService    ports.MetricService
	DashboardService ports.DashboardService
	Dispatcher       handler.MetricDispatcher
	Readiness        map[string]handler.Pinger
	JWTSecret        string
	Log              zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("wellness"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	roleHandler := handler.NewRoleHandler()
	metricHandler := handler.NewMetricHandler(deps.MetricService, deps.Dispatcher)
	dashboardHandler := handler.NewDashboardHandler(deps.DashboardService, deps.AuthService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated API ---
	v1 := e.Group("/v1", middleware.Auth(deps.JWTSecret))
	v1.GET("/me", authHandler.Me)

	v1.GET("/roles", roleHandler.List)
	v1.GET("/roles/:role", roleHandler.Get)

	v1.POST("/metrics", metricHandler.Record)
	v1.POST("/metrics/batch", metricHandler.RecordBatch)
	v1.GET("/metrics", metricHandler.List)

	v1.GET("/dashboard", dashboardHandler.Page)
	v1.GET("/dashboard/cards", dashboardHandler.Cards)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
