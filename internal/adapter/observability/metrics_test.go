package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPMetricsMiddleware_RecordsStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	mw := HTTPMetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	mw.ServeHTTP(rec, r)
	if rec.Result().StatusCode != http.StatusNoContent {
		t.Fatalf("want 204, got %d", rec.Result().StatusCode)
	}
}

func TestRecordJobRun(t *testing.T) {
	RecordJobRun("collector", "ok", 1.5)
	RecordJobRun("notifier", "error", 0.2)
}

func TestMetricsVectorsAcceptLabels(t *testing.T) {
	CollectorFetchedTotal.WithLabelValues("yad2").Inc()
	CollectorSourceErrorsTotal.WithLabelValues("yad2").Inc()
	ProcessorItemsTotal.WithLabelValues("ok").Inc()
	NotifierSentTotal.WithLabelValues("text").Inc()
	NotifierFailedTotal.Inc()
	NotifierImageOutcomeTotal.WithLabelValues("image_success").Inc()
	ConnectorCircuitOpen.WithLabelValues("yad2").Set(1)
}
