package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server aggregates the dependencies a single job binary's ops surface needs.
// It is job-agnostic: each cmd/ binary drives one job and sets Status and
// Trigger to closures over that job.
type Server struct {
	JobName string
	DBCheck func(ctx context.Context) error

	// Status returns a JSON-encodable snapshot of the job's last-known state
	// (the job binaries return their most recent in-memory run summary),
	// read-only.
	Status func(ctx context.Context) (any, error)

	// Trigger runs the job once, out of cadence, and returns its summary.
	Trigger func(ctx context.Context) (any, error)

	AdminUsername     string
	AdminPasswordHash string
}

// AdminEnabled reports whether /status and /trigger should be mounted.
func (s *Server) AdminEnabled() bool {
	return s.AdminUsername != "" && s.AdminPasswordHash != ""
}

func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "job": s.JobName})
	}
}

func (s *Server) ReadyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if s.DBCheck == nil {
			writeJSON(w, http.StatusOK, map[string]any{"ready": true})
			return
		}
		if err := s.DBCheck(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ready": false, "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ready": true})
	}
}

func (s *Server) MetricsHandler() http.HandlerFunc {
	h := promhttp.Handler()
	return func(w http.ResponseWriter, r *http.Request) { h.ServeHTTP(w, r) }
}

func (s *Server) StatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Status == nil {
			writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "status not available for this job"})
			return
		}
		snapshot, err := s.Status(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, snapshot)
	}
}

// TriggerHandler runs the job out of cadence. The underlying Run is the same
// idempotent operation the scheduler invokes, so an overlapping manual
// trigger is safe per §5's re-entrancy guarantee.
func (s *Server) TriggerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.Trigger == nil {
			writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "trigger not available for this job"})
			return
		}
		summary, err := s.Trigger(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
