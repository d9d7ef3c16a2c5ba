package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vista-ads/internal/core/port"
)

// Handler is the inbound HTTP adapter. The selection engine itself is a
// synchronous library; this layer only parses requests, invokes the
// AdSelector port and shapes responses.
type Handler struct {
	svc    port.AdSelector
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured. gatherer
// serves /metrics; pass the registry the engine's counters live on.
func NewHandler(svc port.AdSelector, logger *slog.Logger, gatherer prometheus.Gatherer) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/advertisements", h.handleAdvertisement)
		r.Get("/advertisements/{token}/click", h.handleClick)
		r.Get("/stats/overview", h.handleStatsOverview)
	})
	r.Method(http.MethodGet, "/metrics",
		promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
