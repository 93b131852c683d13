package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/menumesa/pos-system/internal/api/handler"
	"github.com/menumesa/pos-system/internal/api/middleware"
	"github.com/menumesa/pos-system/internal/core/domain"
)

// Deps holds everything the router needs, constructed at application start
// and passed in explicitly.
type Deps struct {
	Logger      zerolog.Logger
	AuthHandler *handler.AuthHandler
	UserHandler *handler.UserHandler

	// Readiness is optional; the /health/ready route is only registered when
	// it is set (tests run without live dependencies).
	Readiness *handler.ReadinessHandler

	// Auth verifies bearer tokens on protected routes.
	Auth echo.MiddlewareFunc

	// RateLimit throttles the register/login routes. Optional.
	RateLimit echo.MiddlewareFunc

	// Metrics enables the echoprometheus middleware and /metrics endpoint.
	// Disabled in tests to keep the default registry clean.
	Metrics bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	if deps.Metrics {
		e.Use(echoprometheus.NewMiddleware("pos"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	rateLimit := deps.RateLimit
	if rateLimit == nil {
		rateLimit = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", deps.AuthHandler.Register, rateLimit)
	auth.POST("/login", deps.AuthHandler.Login, rateLimit)
	auth.POST("/refresh", deps.AuthHandler.Refresh)
	auth.POST("/logout", deps.AuthHandler.Logout)

	// --- User routes ---
	users := e.Group("/users")
	users.GET("", deps.UserHandler.List, deps.Auth, middleware.RequireRole(domain.RoleAdmin))
	users.POST("", deps.UserHandler.Create)
	users.GET("/me", deps.UserHandler.Me, deps.Auth)
	users.GET("/:id", deps.UserHandler.Get, deps.Auth)
	users.PATCH("/:id", deps.UserHandler.Update, deps.Auth)
	users.DELETE("/:id", deps.UserHandler.Delete, deps.Auth, middleware.RequireRole(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	if deps.Readiness != nil {
		e.GET("/health/ready", deps.Readiness.Readiness)
	}

	return e
}
