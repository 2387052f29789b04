package yad2

import (
	"strconv"
	"testing"
	"time"
)

func TestCursor_DecodeEmptyIsZeroValue(t *testing.T) {
	c, err := decodeCursor(nil)
	if err != nil {
		t.Fatalf("decodeCursor: %v", err)
	}
	if c.ConsecutiveFailures != 0 || c.CircuitOpenUntil != nil {
		t.Fatalf("expected zero-value cursor, got %+v", c)
	}
}

func TestCursor_RoundTrip(t *testing.T) {
	c := cursor{LastCityIndex: 2, SeenOrderIDs: []string{"a", "b"}}
	encoded, err := c.encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := decodeCursor(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.LastCityIndex != 2 || len(decoded.SeenOrderIDs) != 2 {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestCursor_CircuitTripsAtFailureThreshold(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := cursor{}
	for i := 0; i < failureThreshold-1; i++ {
		c = c.recordFailure(now)
		if c.circuitOpen(now) {
			t.Fatalf("circuit should not be open before threshold, failure %d", i+1)
		}
	}
	c = c.recordFailure(now)
	if !c.circuitOpen(now) {
		t.Fatalf("expected circuit open after %d consecutive failures", failureThreshold)
	}
	if c.CircuitOpenUntil == nil || !c.CircuitOpenUntil.Equal(now.Add(cooldown)) {
		t.Fatalf("expected circuit_open_until = now+%v, got %+v", cooldown, c.CircuitOpenUntil)
	}
}

func TestCursor_CircuitClosesAfterCooldown(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := cursor{}
	for i := 0; i < failureThreshold; i++ {
		c = c.recordFailure(now)
	}
	later := now.Add(cooldown + time.Minute)
	if c.circuitOpen(later) {
		t.Fatalf("expected circuit closed after cooldown elapses")
	}
}

func TestCursor_SuccessResetsBreaker(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := cursor{}
	for i := 0; i < failureThreshold; i++ {
		c = c.recordFailure(now)
	}
	c = c.recordSuccess()
	if c.ConsecutiveFailures != 0 || c.CircuitOpenUntil != nil || c.circuitOpen(now) {
		t.Fatalf("expected breaker fully reset, got %+v", c)
	}
}

func TestCursor_FIFODedupEvictsOldest(t *testing.T) {
	c := cursor{}
	for i := 0; i < maxSeenOrderIDs+10; i++ {
		c = c.markSeen(strconv.Itoa(i))
	}
	if len(c.SeenOrderIDs) != maxSeenOrderIDs {
		t.Fatalf("expected FIFO set capped at %d, got %d", maxSeenOrderIDs, len(c.SeenOrderIDs))
	}
	if c.hasSeen(strconv.Itoa(0)) {
		t.Fatalf("expected oldest entries evicted")
	}
	if !c.hasSeen(strconv.Itoa(maxSeenOrderIDs + 9)) {
		t.Fatalf("expected most recent entry retained")
	}
}
