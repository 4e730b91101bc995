package ratelimit

import (
	"context"
	"testing"
	"time"
)

func newTestLimiter(max int) (*MemoryLimiter, *time.Time) {
	limiter := NewMemoryLimiter(Config{Window: time.Minute, Max: max})
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	return limiter, &now
}

func TestMemoryLimiter_AdmitsUpToMax(t *testing.T) {
	limiter, _ := newTestLimiter(30)
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		if !limiter.Allow(ctx, "1.2.3.4") {
			t.Fatalf("request %d within the budget was rejected", i+1)
		}
	}
	if limiter.Allow(ctx, "1.2.3.4") {
		t.Fatal("request 31 within one window was admitted")
	}
}

func TestMemoryLimiter_RejectedCallsStillCount(t *testing.T) {
	limiter, now := newTestLimiter(2)
	ctx := context.Background()

	limiter.Allow(ctx, "c")
	limiter.Allow(ctx, "c")

	*now = now.Add(40 * time.Second)
	if limiter.Allow(ctx, "c") {
		t.Fatal("third request was admitted")
	}

	// The first two stamps expire, leaving only the rejected call in the
	// window. It consumed budget too, so one more request fills the window.
	*now = now.Add(30 * time.Second)
	if !limiter.Allow(ctx, "c") {
		t.Fatal("request was rejected after older stamps expired")
	}
	if limiter.Allow(ctx, "c") {
		t.Fatal("budget did not account for the rejected request")
	}
}

func TestMemoryLimiter_WindowSlides(t *testing.T) {
	limiter, now := newTestLimiter(2)
	ctx := context.Background()

	if !limiter.Allow(ctx, "c") || !limiter.Allow(ctx, "c") {
		t.Fatal("requests within the budget were rejected")
	}
	if limiter.Allow(ctx, "c") {
		t.Fatal("request over the budget was admitted")
	}

	// Calls outside the trailing window no longer count.
	*now = now.Add(2 * time.Minute)
	if !limiter.Allow(ctx, "c") {
		t.Fatal("request after the window expired was rejected")
	}
}

func TestMemoryLimiter_ClientsAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(1)
	ctx := context.Background()

	if !limiter.Allow(ctx, "a") {
		t.Fatal("first request from a was rejected")
	}
	if limiter.Allow(ctx, "a") {
		t.Fatal("second request from a was admitted")
	}
	if !limiter.Allow(ctx, "b") {
		t.Fatal("first request from b was rejected by a's budget")
	}
}

func TestMemoryLimiter_Reset(t *testing.T) {
	limiter, _ := newTestLimiter(1)
	ctx := context.Background()

	limiter.Allow(ctx, "c")
	if limiter.Allow(ctx, "c") {
		t.Fatal("second request was admitted before reset")
	}

	limiter.Reset()
	if !limiter.Allow(ctx, "c") {
		t.Fatal("request after reset was rejected")
	}
}

func TestMemoryLimiter_SweepEvictsIdleClients(t *testing.T) {
	limiter, now := newTestLimiter(5)
	ctx := context.Background()

	limiter.Allow(ctx, "idle")
	*now = now.Add(30 * time.Second)
	limiter.Allow(ctx, "active")

	*now = now.Add(45 * time.Second)
	limiter.Sweep()

	if got := limiter.Len(); got != 1 {
		t.Fatalf("expected 1 tracked client after sweep, got %d", got)
	}
}
