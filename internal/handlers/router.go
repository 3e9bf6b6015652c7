package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the HTTP router. mcpHandler and metricsHandler are
// optional; nil leaves the route unregistered.
func NewRouter(mcpHandler http.Handler, metricsHandler http.Handler, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggingMiddleware(logger))

	r.Get("/health", HealthCheckHandler())

	if mcpHandler != nil {
		r.Method(http.MethodPost, "/mcp/sse", mcpHandler)
	}
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	return r
}
