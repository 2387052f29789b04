package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthzHandler(t *testing.T) {
	srv := &Server{JobName: "collector"}
	rec := httptest.NewRecorder()
	srv.HealthzHandler()(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
}

func TestReadyzHandler_NoDBCheck(t *testing.T) {
	srv := &Server{JobName: "collector"}
	rec := httptest.NewRecorder()
	srv.ReadyzHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
}

func TestReadyzHandler_DBCheckFails(t *testing.T) {
	srv := &Server{JobName: "collector", DBCheck: func(ctx context.Context) error {
		return errors.New("db unreachable")
	}}
	rec := httptest.NewRecorder()
	srv.ReadyzHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("want 503, got %d", rec.Code)
	}
}

func TestStatusHandler_NotImplemented(t *testing.T) {
	srv := &Server{JobName: "collector"}
	rec := httptest.NewRecorder()
	srv.StatusHandler()(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("want 501, got %d", rec.Code)
	}
}

func TestStatusHandler_Success(t *testing.T) {
	srv := &Server{JobName: "collector", Status: func(ctx context.Context) (any, error) {
		return map[string]string{"last_run": "ok"}, nil
	}}
	rec := httptest.NewRecorder()
	srv.StatusHandler()(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
}

func TestTriggerHandler_RejectsNonPost(t *testing.T) {
	srv := &Server{JobName: "collector", Trigger: func(ctx context.Context) (any, error) {
		return nil, nil
	}}
	rec := httptest.NewRecorder()
	srv.TriggerHandler()(rec, httptest.NewRequest(http.MethodGet, "/trigger", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("want 405, got %d", rec.Code)
	}
}

func TestTriggerHandler_Success(t *testing.T) {
	srv := &Server{JobName: "collector", Trigger: func(ctx context.Context) (any, error) {
		return map[string]int{"fetched": 3}, nil
	}}
	rec := httptest.NewRecorder()
	srv.TriggerHandler()(rec, httptest.NewRequest(http.MethodPost, "/trigger", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
}

func TestAdminEnabled(t *testing.T) {
	if (&Server{}).AdminEnabled() {
		t.Fatal("expected disabled with no credentials set")
	}
	if !(&Server{AdminUsername: "admin", AdminPasswordHash: "x"}).AdminEnabled() {
		t.Fatal("expected enabled with both credentials set")
	}
}
