package observability

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequestsTotal counts ops-surface HTTP requests by route, method, status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	// HTTPRequestDuration records request durations by route and method.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	// JobRunsTotal counts job runs by job name and terminal status.
	JobRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_runs_total",
			Help: "Total number of collector/processor/notifier runs",
		},
		[]string{"job", "status"},
	)
	// JobRunDuration records run durations by job name.
	JobRunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "job_run_duration_seconds",
			Help:    "Job run duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"job"},
	)

	// CollectorFetchedTotal counts raw listings fetched per source.
	CollectorFetchedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collector_fetched_total",
			Help: "Total raw listings fetched by source",
		},
		[]string{"source"},
	)
	// CollectorSourceErrorsTotal counts per-source fetch failures.
	CollectorSourceErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collector_source_errors_total",
			Help: "Total source fetch failures by source",
		},
		[]string{"source"},
	)

	// ProcessorItemsTotal counts processed raw listings by outcome.
	ProcessorItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "processor_items_total",
			Help: "Total raw listings processed, by outcome",
		},
		[]string{"outcome"}, // ok, failed
	)

	// NotifierSentTotal counts delivered notifications by channel.
	NotifierSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_sent_total",
			Help: "Total notifications delivered, by channel",
		},
		[]string{"channel"}, // text, photo
	)
	// NotifierFailedTotal counts failed delivery attempts.
	NotifierFailedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notifier_failed_total",
			Help: "Total notification delivery attempts that failed",
		},
	)
	// NotifierImageOutcomeTotal tracks photo-vs-fallback-vs-no-image outcomes.
	NotifierImageOutcomeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_image_outcome_total",
			Help: "Notification image delivery outcome",
		},
		[]string{"outcome"}, // image_success, image_fallback, no_image
	)

	// ConnectorCircuitOpen tracks a connector's circuit-breaker state (0/1).
	ConnectorCircuitOpen = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "connector_circuit_open",
			Help: "Connector circuit breaker state (1=open, 0=closed)",
		},
		[]string{"source"},
	)
)

// InitMetrics registers every collector with the default Prometheus registry.
func InitMetrics() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		JobRunsTotal,
		JobRunDuration,
		CollectorFetchedTotal,
		CollectorSourceErrorsTotal,
		ProcessorItemsTotal,
		NotifierSentTotal,
		NotifierFailedTotal,
		NotifierImageOutcomeTotal,
		ConnectorCircuitOpen,
	)
}

// RecordJobRun records a completed run's duration and terminal status.
func RecordJobRun(job, status string, seconds float64) {
	JobRunsTotal.WithLabelValues(job, status).Inc()
	JobRunDuration.WithLabelValues(job).Observe(seconds)
}

// HTTPMetricsMiddleware records Prometheus metrics for each ops-surface request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()

		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		status := ww.Status()
		HTTPRequestsTotal.WithLabelValues(route, r.Method, http.StatusText(status)).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(dur)
	})
}
