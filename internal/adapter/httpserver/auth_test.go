package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHashAndVerifyPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery-staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword("correct-horse-battery-staple", hash) {
		t.Fatal("expected correct password to verify")
	}
	if VerifyPassword("wrong-password", hash) {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestVerifyPassword_PlaintextFallback(t *testing.T) {
	if !VerifyPassword("opensesame", "opensesame") {
		t.Fatal("expected plaintext fallback to accept a matching password")
	}
	if VerifyPassword("wrong", "opensesame") {
		t.Fatal("expected plaintext fallback to reject a mismatched password")
	}
}

func TestVerifyPassword_MalformedHashRejected(t *testing.T) {
	if VerifyPassword("anything", "argon2id$not$enough$fields") {
		t.Fatal("expected malformed argon2id hash to fail verification")
	}
}

func TestAdminGuard(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	srv := &Server{AdminUsername: "admin", AdminPasswordHash: hash}

	called := false
	guarded := srv.AdminGuard(func(w http.ResponseWriter, r *http.Request) { called = true })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	guarded(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 without credentials, got %d", rec.Code)
	}
	if called {
		t.Fatal("handler must not run without valid credentials")
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/status", nil)
	req.SetBasicAuth("admin", "wrong")
	guarded(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 with wrong password, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/status", nil)
	req.SetBasicAuth("admin", "s3cret")
	guarded(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200 with valid credentials, got %d", rec.Code)
	}
	if !called {
		t.Fatal("handler must run with valid credentials")
	}
}
