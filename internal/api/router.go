// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"accrual-service/internal/api/handler"
	"accrual-service/internal/auth"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(rewardHandler *handler.RewardHandler, resolver auth.IdentityResolver, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)                       // Add a request ID to the context
	r.Use(middleware.RealIP)                          // Use the real IP address
	r.Use(middleware.Logger)                          // Log HTTP requests
	r.Use(middleware.Recoverer)                       // Recover from panics and return 500
	r.Use(middleware.Timeout(handler.DefaultTimeout)) // Set a default timeout for requests
	r.Use(MetricsMiddleware)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Reward API routes; identity is resolved once per request and handed to
	// handlers through the context.
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(resolver, logger))

		r.Post("/accounts", rewardHandler.CreateAccount)
		r.Post("/claims", rewardHandler.SettleClaim)
		r.Get("/balance", rewardHandler.GetBalance)
		r.Get("/account", rewardHandler.GetAccountDetails)
	})

	return r
}
