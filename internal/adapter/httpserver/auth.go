// Package httpserver exposes the small internal ops surface
// (healthz/readyz/metrics/status/trigger) shared by the collector, processor,
// and notifier binaries (§1.3).
package httpserver

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2Params mirrors the teacher's password-hashing parameters.
type Argon2Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLen     uint32
	KeyLen      uint32
}

var defaultArgon2Params = Argon2Params{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 2,
	SaltLen:     16,
	KeyLen:      32,
}

// HashPassword creates an Argon2id hash of password, in the same
// "argon2id$iterations$memory$parallelism$salt$hash" encoding the teacher
// uses, so an operator can precompute a hash for ADMIN_PASSWORD the same way.
func HashPassword(password string) (string, error) {
	p := defaultArgon2Params
	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("op=httpserver.HashPassword: %w", err)
	}
	hash := argon2.IDKey([]byte(password), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLen)
	return fmt.Sprintf("argon2id$%d$%d$%d$%s$%s",
		p.Iterations, p.Memory, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifyPassword checks password against an Argon2id hash produced by
// HashPassword, or against a plaintext password as a fallback so operators
// can set ADMIN_PASSWORD directly without a separate hashing step.
func VerifyPassword(password, stored string) bool {
	if !strings.HasPrefix(stored, "argon2id$") {
		return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1
	}

	parts := strings.Split(stored, "$")
	if len(parts) != 6 {
		return false
	}
	iters, err1 := parseUint32(parts[1])
	mem, err2 := parseUint32(parts[2])
	par64, err3 := parseUint32(parts[3])
	if err1 != nil || err2 != nil || err3 != nil {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}
	var par uint8
	if par64 > math.MaxUint8 {
		par = math.MaxUint8
	} else {
		par = uint8(par64)
	}
	actual := argon2.IDKey([]byte(password), salt, iters, mem, par, defaultArgon2Params.KeyLen)
	return subtle.ConstantTimeCompare(actual, expected) == 1
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// AdminGuard wraps next with HTTP Basic Auth checked against cfg's admin
// credentials. Intended for /status and /trigger, never for /healthz,
// /readyz, or /metrics which the scheduler and scrapers must reach freely.
func (s *Server) AdminGuard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(user), []byte(s.AdminUsername)) != 1 || !VerifyPassword(pass, s.AdminPasswordHash) {
			w.Header().Set("WWW-Authenticate", `Basic realm="rentifier-ops"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	}
}
