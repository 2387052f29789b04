package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRecoverer_CatchesPanic(t *testing.T) {
	h := Recoverer()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", rec.Code)
	}
}

func TestRequestID_SetsHeaderAndPropagates(t *testing.T) {
	var gotID string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = w.Header().Get("X-Request-Id")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected X-Request-Id header to be set")
	}
	if gotID == "" {
		t.Fatal("expected request id visible before handler body ran")
	}
}

func TestRequestID_PreservesIncomingHeader(t *testing.T) {
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "incoming-id")
	h.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-Id") != "incoming-id" {
		t.Fatalf("expected incoming request id to be preserved, got %q", rec.Header().Get("X-Request-Id"))
	}
}

func TestAccessLog_DoesNotAlterResponse(t *testing.T) {
	h := AccessLog()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/brew", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("want 418, got %d", rec.Code)
	}
}
