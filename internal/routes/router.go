package routes

import (
	"net/http"

	"airport-booking/skyport/internal/api"
	"airport-booking/skyport/internal/config"
	"airport-booking/skyport/internal/logging"
	"airport-booking/skyport/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes builds the HTTP handler. gatherer backs /metrics and should be the
// registry the metrics in deps were registered with.
func RegisterRoutes(cfg *config.Config, deps *api.Dependencies, gatherer prometheus.Gatherer) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.Logging)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	handlers := api.NewHandlers(deps)

	// health check and scrape endpoint stay outside the rate limiter
	r.Get("/health", handlers.HealthCheck())
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	RegisterAPIRoutes(r, handlers, deps, limiter)

	logging.Info("Router initialized", "cors_origins", cfg.CORSAllowedOrigins)
	return r
}
