package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/samims/pipenotify/internal/handler"
	customMiddleware "github.com/samims/pipenotify/internal/middleware"
)

// NewRouter wires the local dispatcher routes.
func NewRouter(invoke *handler.InvokeHandler, health *handler.HealthHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(customMiddleware.MetricsMiddleware)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/invoke", func(r chi.Router) {
		r.Post("/approval-relay", invoke.ApprovalRelay)
		r.Post("/webhook-forwarder", invoke.WebhookForwarder)
	})

	// Health & Readiness Routes
	r.Get("/healthz", health.Liveness)
	r.Get("/readyz", health.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
