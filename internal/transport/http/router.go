package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"legatia/internal/platform/metrics"
	"legatia/pkg/platform/httputil"
	authmw "legatia/pkg/platform/middleware/auth"
	"legatia/pkg/platform/middleware/request"
)

// APIPrefix is the mount point of every authenticated route.
const APIPrefix = "/api/v1"

// Registrar is implemented by every module handler.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether a backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

type Config struct {
	Logger   *slog.Logger
	Auth     authmw.JWTValidator
	Metrics  *metrics.Metrics
	Health   map[string]HealthCheck
	Handlers []Registrar

	// RateLimit runs after authentication. Nil disables it.
	RateLimit func(http.Handler) http.Handler
}

// NewRouter wires the public health endpoints and mounts the module handlers under
// APIPrefix behind bearer authentication. Transport stays free of business
// logic; handlers delegate to their services.
func NewRouter(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.RequestTime)
	r.Use(request.Recover(cfg.Logger))
	r.Use(request.AccessLog(cfg.Logger))
	r.Use(cfg.Metrics.Instrument)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", readiness(cfg.Health))
	r.Handle("/metrics", metrics.Handler())

	r.Route(APIPrefix, func(api chi.Router) {
		api.Use(authmw.RequireAuth(cfg.Auth, cfg.Logger))
		if cfg.RateLimit != nil {
			api.Use(cfg.RateLimit)
		}
		for _, h := range cfg.Handlers {
			h.Register(api)
		}
	})
	return r
}

func readiness(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		out := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				out[name] = "unavailable"
				continue
			}
			out[name] = "ok"
		}
		httputil.WriteJSON(w, status, out)
	}
}
