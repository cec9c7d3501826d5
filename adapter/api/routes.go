package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/felixgeelhaar/pytron/pkg/observability"
)

// RouterConfig holds the router's dependencies.
type RouterConfig struct {
	Handler *Handler
	// Token guards every route except health and metrics. Empty disables auth.
	Token string
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
	Metrics        observability.Metrics
	Logger         *slog.Logger
}

// NewRouter creates the chi router for the HTTP API.
func NewRouter(cfg RouterConfig) chi.Router {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	h := cfg.Handler

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(CorrelationMiddleware)
	r.Use(LoggingMiddleware(logger, metrics))
	r.Use(chiMiddleware.Recoverer)

	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg.Token, logger))

			r.Get("/dashboard", h.Dashboard)
			r.Get("/analytics", h.Analytics)

			r.Get("/days/{date}", h.Day)
			r.Put("/days/{date}/hours/{hour}", h.LogHour)
			r.Delete("/days/{date}/hours/{hour}", h.ClearHour)

			r.Get("/tasks", h.ListTasks)
			r.Post("/tasks", h.AddTask)
			r.Post("/tasks/{id}/toggle", h.ToggleTask)
			r.Delete("/tasks/{id}", h.DeleteTask)

			r.Get("/badges", h.Badges)

			r.Get("/goals", h.ListGoals)
			r.Post("/goals", h.CreateGoal)
			r.Delete("/goals/{id}", h.DeleteGoal)

			r.Get("/export", h.Export)
			r.Post("/import", h.Import)
		})
	})

	return r
}
