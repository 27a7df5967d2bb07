package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/leaddesk/leads-api/docs"
	"github.com/leaddesk/leads-api/internal/api/handler"
	"github.com/leaddesk/leads-api/internal/api/middleware"
	"github.com/leaddesk/leads-api/internal/core/domain"
	"github.com/leaddesk/leads-api/internal/core/ports"
)

// Deps groups everything the router needs. Limiter and Checks are optional.
type Deps struct {
	Auth        ports.AuthService
	Leads       ports.LeadService
	Limiter     ports.LoginLimiter
	Checks      map[string]handler.Check
	CORSOrigins []string
	Logger      zerolog.Logger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)
	// Client IP is the socket peer; forwarding headers are client-controlled
	// and would let a caller dodge the login throttle.
	e.IPExtractor = echo.ExtractIPDirect()

	registerer, gatherer := d.Registerer, d.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.BodyLimit("64K"))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Limiter, d.Logger)
	leadHandler := handler.NewLeadHandler(d.Leads)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Checks)

	requireAdmin := []echo.MiddlewareFunc{
		middleware.Auth(d.Auth),
		middleware.RequireRole(domain.RoleAdmin),
	}

	// --- Auth routes ---
	e.POST("/api/auth/login", authHandler.Login)

	// --- Lead routes ---
	e.POST("/api/leads", leadHandler.Create)
	e.GET("/api/leads", leadHandler.List, requireAdmin...)
	e.PATCH("/api/leads/:id/status", leadHandler.UpdateStatus, requireAdmin...)
	e.POST("/api/leads/:id/notes", leadHandler.AddNote, requireAdmin...)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
