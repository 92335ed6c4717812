package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gridhook-systems/gridhook/internal/handlers"
	"github.com/gridhook-systems/gridhook/internal/middleware"
)

// NewRouter constructs a ServeMux with the webhook routes registered.
func NewRouter(h *handlers.CloudEventsHandler) http.Handler {
	mux := http.NewServeMux()

	// CloudEvents webhook: validation handshake + event delivery
	mux.HandleFunc("/cloudevents", h.HandleCloudEvents)

	// Health endpoints
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/healthz", h.Health)
	mux.HandleFunc("/readyz", h.Ready)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.RequestID(mux)
}
