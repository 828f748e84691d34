// Package api provides the HTTP API for PedalPulse.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/pedalpulse/pedalpulse/internal/api/handler"
	"github.com/pedalpulse/pedalpulse/internal/api/middleware"
	"github.com/pedalpulse/pedalpulse/internal/api/response"
	"github.com/pedalpulse/pedalpulse/internal/auth"
	"github.com/pedalpulse/pedalpulse/internal/bundle"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version      string
	BuildTime    string
	Logger       zerolog.Logger
	ServiceName  string
	Metrics      *middleware.Metrics
	TokenService *auth.TokenService
	Store        *bundle.Store
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "pedalpulse-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.NotFound(w, req, "resource not found")
	})

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Store)
	dataHandler := handler.NewDataHandler(cfg.Store)
	adminHandler := handler.NewAdminHandler(cfg.Store, cfg.Logger)

	authMiddleware := middleware.Auth(cfg.TokenService)

	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit) // 100 req/min
	adminRateLimit := middleware.RateLimitByIP(middleware.AdminRateLimit)       // 10 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		// Aggregate data endpoints (public) - standard rate limiting
		r.With(standardRateLimit).Get("/data", dataHandler.Data)
		r.With(standardRateLimit).Get("/stations", dataHandler.Stations)

		// Admin endpoints (authenticated) - strict rate limiting
		r.Route("/admin", func(r chi.Router) {
			r.Use(adminRateLimit)
			r.Use(authMiddleware)
			r.Post("/rebuild", adminHandler.Rebuild)
		})
	})

	return r
}
