// Package ratelimit provides per-client sliding-window request limiting.
//
// Two backends implement the same Limiter contract: an in-process memory
// limiter for single-instance deployments and tests, and a redis-backed
// limiter for deployments where the budget must hold across replicas.
package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether a request from a client is admitted.
//
// Every Allow call counts against the client's budget, including calls that
// are rejected. Allow never fails: backends that can error internally resolve
// the call to an admit/reject decision themselves.
type Limiter interface {
	// Allow records the request and reports whether it is admitted.
	Allow(ctx context.Context, clientKey string) bool
	// Reset clears all recorded state, for tests and teardown.
	Reset()
}

// Config holds the window policy shared by all backends.
type Config struct {
	// Window is the trailing interval requests are counted over.
	Window time.Duration
	// Max is the number of requests admitted per client within Window.
	Max int
}
