// Package yad2 implements the reference marketplace connector: a single
// HTTP-polling integration exercising the full connector contract (§4.1),
// including the circuit breaker and FIFO dedup whose state must survive a
// collector process restart — hence everything here round-trips through
// plain JSON rather than an in-memory library.
package yad2

import (
	"encoding/json"
	"fmt"
	"time"
)

// maxSeenOrderIDs bounds the FIFO dedup set carried inside the cursor.
const maxSeenOrderIDs = 500

// failureThreshold is the consecutive-failure count that trips the
// circuit breaker.
const failureThreshold = 5

// cooldown is how long the circuit stays open once tripped.
const cooldown = 30 * time.Minute

// cursor is the opaque state yad2 persists between collector runs. It is
// marshaled to JSON and handed to the collector as plain bytes; the
// collector never interprets its contents (§4.1).
type cursor struct {
	LastCityIndex       int        `json:"last_city_index"`
	SeenOrderIDs        []string   `json:"seen_order_ids"`
	ConsecutiveFailures int        `json:"consecutive_failures"`
	CircuitOpenUntil    *time.Time `json:"circuit_open_until,omitempty"`
}

// decodeCursor parses raw cursor bytes, returning a zero-value cursor when
// raw is empty (first run for this source).
func decodeCursor(raw []byte) (cursor, error) {
	var c cursor
	if len(raw) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return cursor{}, fmt.Errorf("op=yad2.cursor.decode: %w", err)
	}
	return c, nil
}

// encode serializes c back to the opaque bytes the collector will persist.
func (c cursor) encode() ([]byte, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("op=yad2.cursor.encode: %w", err)
	}
	return b, nil
}

// circuitOpen reports whether the breaker is currently open as of now.
func (c cursor) circuitOpen(now time.Time) bool {
	return c.CircuitOpenUntil != nil && now.Before(*c.CircuitOpenUntil)
}

// recordFailure increments the consecutive-failure counter and trips the
// breaker once it reaches failureThreshold.
func (c cursor) recordFailure(now time.Time) cursor {
	c.ConsecutiveFailures++
	if c.ConsecutiveFailures >= failureThreshold {
		until := now.Add(cooldown)
		c.CircuitOpenUntil = &until
	}
	return c
}

// recordSuccess resets the breaker state; a successful call always closes
// the circuit, even if it had just tripped.
func (c cursor) recordSuccess() cursor {
	c.ConsecutiveFailures = 0
	c.CircuitOpenUntil = nil
	return c
}

// markSeen appends orderID to the FIFO dedup set, evicting the oldest
// entries once the set exceeds maxSeenOrderIDs.
func (c cursor) markSeen(orderID string) cursor {
	c.SeenOrderIDs = append(c.SeenOrderIDs, orderID)
	if len(c.SeenOrderIDs) > maxSeenOrderIDs {
		c.SeenOrderIDs = c.SeenOrderIDs[len(c.SeenOrderIDs)-maxSeenOrderIDs:]
	}
	return c
}

// hasSeen reports whether orderID is already present in the dedup set.
func (c cursor) hasSeen(orderID string) bool {
	for _, id := range c.SeenOrderIDs {
		if id == orderID {
			return true
		}
	}
	return false
}
