// Package httpapi assembles the public HTTP surface: platform middleware,
// health and metrics endpoints, and the rate-limited scan routes.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dlscan/internal/platform/metrics"
	rlmodels "dlscan/internal/ratelimit/models"
	"dlscan/internal/scan/handler"
	"dlscan/pkg/platform/httputil"
	"dlscan/pkg/platform/middleware/metadata"
	"dlscan/pkg/platform/middleware/requestid"
	"dlscan/pkg/platform/middleware/requesttime"
)

// RateLimiter returns middleware limiting an endpoint class.
type RateLimiter interface {
	RateLimit(class rlmodels.EndpointClass) func(http.Handler) http.Handler
}

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// Deps are the collaborators of the router.
type Deps struct {
	Logger      *slog.Logger
	Scan        *handler.Handler
	RateLimiter RateLimiter
	HTTPMetrics *metrics.Metrics
	Gatherer    prometheus.Gatherer
	// Checks are run by /health; a failing check turns it into a 503.
	Checks map[string]HealthCheck
}

// NewRouter wires all public endpoints.
func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(chimw.Recoverer)
	r.Use(accessLog(logger))
	r.Use(d.HTTPMetrics.Middleware)

	r.Get("/health", health(d.Checks))
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.RateLimit(rlmodels.ClassScan))
		}
		d.Scan.RegisterUploads(r)
	})
	r.Group(func(r chi.Router) {
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.RateLimit(rlmodels.ClassExtract))
		}
		d.Scan.RegisterText(r)
	})

	return r
}

func health(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"failed": name,
				})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
