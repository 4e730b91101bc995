package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter is an in-process sliding-window limiter. It keeps an ordered
// slice of request timestamps per client key; on every call the slice is
// trimmed to the window, the current request is appended, and the request is
// rejected when the resulting count exceeds the configured maximum.
//
// The read-modify-write per key happens under a mutex so concurrent requests
// from the same client are never undercounted.
type MemoryLimiter struct {
	mu      sync.Mutex
	clients map[string][]time.Time
	cfg     Config

	// now is swappable in tests.
	now func() time.Time
}

// NewMemoryLimiter creates a memory-backed limiter with the given window policy.
func NewMemoryLimiter(cfg Config) *MemoryLimiter {
	return &MemoryLimiter{
		clients: make(map[string][]time.Time),
		cfg:     cfg,
		now:     time.Now,
	}
}

// Allow records the request for clientKey and reports whether it is admitted.
func (m *MemoryLimiter) Allow(_ context.Context, clientKey string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	kept := trimWindow(m.clients[clientKey], now.Add(-m.cfg.Window))
	kept = append(kept, now)
	m.clients[clientKey] = kept

	return len(kept) <= m.cfg.Max
}

// Reset clears all recorded request state.
func (m *MemoryLimiter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients = make(map[string][]time.Time)
}

// Sweep removes clients with no timestamps inside the window, bounding memory
// for an unbounded population of client keys. Intended to run on a ticker.
func (m *MemoryLimiter) Sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.cfg.Window)
	for key, stamps := range m.clients {
		kept := trimWindow(stamps, cutoff)
		if len(kept) == 0 {
			delete(m.clients, key)
			continue
		}
		m.clients[key] = kept
	}
}

// Len reports the number of tracked client keys.
func (m *MemoryLimiter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}

// trimWindow drops timestamps at or before the cutoff. Timestamps are
// appended in order, so the first in-window index bounds the kept suffix.
func trimWindow(stamps []time.Time, cutoff time.Time) []time.Time {
	for i, ts := range stamps {
		if ts.After(cutoff) {
			return append([]time.Time(nil), stamps[i:]...)
		}
	}
	return nil
}
