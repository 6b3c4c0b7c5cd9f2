package handlers

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tphummel/nts_configurator/internal/metrics"
	"github.com/tphummel/nts_configurator/internal/middleware"
)

// NewMux registers every route on a new ServeMux. API routes require the
// Bearer token when token is non-empty.
func NewMux(h *Handler, token string) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check, metrics and docs: no auth
	mux.HandleFunc("GET /healthz", h.Health)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /openapi.yaml", OpenAPISpec)
	mux.HandleFunc("GET /docs", Docs)

	api := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, metrics.Middleware(pattern, middleware.Auth(token, fn)))
	}
	api("GET /api/v1/models", h.ListModels)
	api("GET /api/v1/models/{id}", h.GetModel)
	api("GET /api/v1/recommendation", h.Recommend)
	api("GET /api/v1/configuration", h.GetConfiguration)
	api("POST /api/v1/configuration", h.UpdateConfiguration)
	api("GET /api/v1/export", h.Export)

	return mux
}

// Wrap adds request IDs and request logging around the mux. Health checks
// and metric scrapes are not logged.
func Wrap(logger *slog.Logger, next http.Handler) http.Handler {
	skip := func(r *http.Request) bool {
		return r.URL.Path == "/healthz" || r.URL.Path == "/metrics"
	}
	return middleware.RequestID(middleware.RequestLogger(logger, skip, next))
}
