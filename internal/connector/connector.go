// Package connector defines the pluggable per-marketplace fetch/normalize
// contract (§4.1) and the process-local registry job binaries consult at
// start-up. Registration happens once, at init; there is no dynamic
// re-registration while a job is running.
package connector

import (
	"fmt"
	"sync"

	"github.com/oricho123/rentifier/internal/domain"
)

// ErrorKind classifies a connector failure so the collector job can decide
// whether to retry, trip the circuit, or simply log and move on (§4.1).
type ErrorKind string

const (
	KindNetwork   ErrorKind = "network"
	KindCaptcha   ErrorKind = "captcha"
	KindParse     ErrorKind = "parse"
	KindRateLimit ErrorKind = "rate_limit"
	KindUnknown   ErrorKind = "unknown"
)

// Error is the error type every Connector implementation returns from
// FetchNew. Kind drives retry/circuit-breaker classification; Retryable is
// the final word (a KindParse error is never retryable even though its
// underlying cause might otherwise look transient).
type Error struct {
	Kind      ErrorKind
	Retryable bool
	Status    int
	Source    string
	Err       error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("connector %s: %s (status=%d): %v", e.Source, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("connector %s: %s: %v", e.Source, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError wraps err with classification metadata. Retryable defaults to
// true for network/rate_limit kinds and false for captcha/parse, matching
// domain.DefaultRetryConfig's substring table.
func NewError(source string, kind ErrorKind, status int, err error) *Error {
	retryable := kind == KindNetwork || kind == KindRateLimit
	return &Error{Kind: kind, Retryable: retryable, Status: status, Source: source, Err: err}
}

// Connector is the contract every marketplace adapter implements. FetchNew
// receives the opaque cursor bytes persisted from the previous run (nil on
// first run) and returns any newly discovered candidates plus the cursor
// to persist for the next run — advanced only when the caller commits the
// batch successfully (§4.1, §4.2).
type Connector interface {
	// Source is the canonical source identifier this connector serves,
	// matching domain.Source.Name (the human-readable key an operator seeds,
	// not the row's UUID primary key).
	Source() string

	// FetchNew retrieves new listing candidates since cursor. It must not
	// mutate any shared state outside of the returned cursor bytes.
	FetchNew(ctx domain.Context, cursor []byte, cities []domain.MonitoredCity) ([]domain.ListingCandidate, []byte, error)

	// Normalize turns a raw candidate into a structured draft, applying
	// both the connector's own structural parsing and the shared
	// internal/extract rule pipeline for anything the source only exposes
	// as free text (§4.5).
	Normalize(candidate domain.ListingCandidate) (domain.ListingDraft, error)
}

// Registry is a process-local, read-only-after-init lookup of connectors by
// source name.
type Registry struct {
	mu         sync.RWMutex
	connectors map[string]Connector
}

// NewRegistry returns an empty registry. Call Register for each enabled
// connector during process start-up, before any job loop begins.
func NewRegistry() *Registry {
	return &Registry{connectors: map[string]Connector{}}
}

// Register adds c to the registry, keyed by c.Source(). Registering the
// same source twice replaces the previous entry — used by tests to swap in
// fakes, never by production code during a run.
func (r *Registry) Register(c Connector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connectors[c.Source()] = c
}

// Get looks up the connector for source.
func (r *Registry) Get(source string) (Connector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.connectors[source]
	return c, ok
}

// All returns every registered connector, in no particular order.
func (r *Registry) All() []Connector {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Connector, 0, len(r.connectors))
	for _, c := range r.connectors {
		out = append(out, c)
	}
	return out
}
