package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Portfolio-Tracker/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Portfolio-Tracker/internal/api/middleware"
	"github.com/ndewijer/Portfolio-Tracker/internal/config"
	"github.com/ndewijer/Portfolio-Tracker/internal/metrics"
	"github.com/ndewijer/Portfolio-Tracker/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(systemService *service.SystemService, trackerService *service.TrackerService, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(metrics.Middleware)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	r.Handle("/metrics", metrics.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(trackerService)
			r.Post("/run", portfolioHandler.Run)
			r.Get("/snapshots", portfolioHandler.Snapshots)
			r.Get("/snapshots/latest", portfolioHandler.LatestSnapshot)
			r.Get("/changes", portfolioHandler.Changes)
			r.Get("/trend", portfolioHandler.Trend)
		})
	})

	return r
}
