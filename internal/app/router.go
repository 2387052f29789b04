// Package app wires the shared ops HTTP surface mounted by every job binary.
package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	httpserver "github.com/oricho123/rentifier/internal/adapter/httpserver"
	"github.com/oricho123/rentifier/internal/adapter/observability"
	"github.com/oricho123/rentifier/internal/config"
)

// ParseOrigins splits a comma-separated CORS origin list, defaulting to "*".
func ParseOrigins(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// BuildOpsRouter mounts /healthz, /readyz, /metrics unconditionally, and
// /status, /trigger only when srv.AdminEnabled() (§1.3). Every job binary
// calls this with its own *httpserver.Server.
func BuildOpsRouter(cfg config.Config, srv *httpserver.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(httpserver.Recoverer())
	r.Use(httpserver.RequestID())
	r.Use(httpserver.TraceMiddleware("http.ops." + srv.JobName))
	r.Use(httpserver.AccessLog())
	r.Use(observability.HTTPMetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: ParseOrigins(cfg.CORSAllowOrigins),
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		MaxAge:         300,
	}))

	r.Get("/healthz", srv.HealthzHandler())
	r.Get("/readyz", srv.ReadyzHandler())
	r.Get("/metrics", srv.MetricsHandler())

	if srv.AdminEnabled() {
		r.Group(func(wr chi.Router) {
			wr.Use(httprate.LimitByIP(cfg.RateLimitPerMin, time.Minute))
			wr.Use(func(next http.Handler) http.Handler {
				return srv.AdminGuard(next.ServeHTTP)
			})
			wr.Get("/status", srv.StatusHandler())
			wr.Post("/trigger", srv.TriggerHandler())
		})
	}

	return r
}
