package ratelimit

import (
	"context"
	"testing"
	"time"

	"placelookup_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisTestLimiter(t *testing.T, max int) (*RedisLimiter, *time.Time) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewRedisLimiter(client, Config{Window: time.Minute, Max: max}, logger.New("test"))
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	return limiter, &now
}

func TestRedisLimiter_AdmitsUpToMax(t *testing.T) {
	limiter, _ := newRedisTestLimiter(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if !limiter.Allow(ctx, "1.2.3.4") {
			t.Fatalf("request %d within the budget was rejected", i+1)
		}
	}
	if limiter.Allow(ctx, "1.2.3.4") {
		t.Fatal("request over the budget was admitted")
	}
}

func TestRedisLimiter_WindowSlides(t *testing.T) {
	limiter, now := newRedisTestLimiter(t, 1)
	ctx := context.Background()

	if !limiter.Allow(ctx, "c") {
		t.Fatal("first request was rejected")
	}
	if limiter.Allow(ctx, "c") {
		t.Fatal("second request within the window was admitted")
	}

	*now = now.Add(2 * time.Minute)
	if !limiter.Allow(ctx, "c") {
		t.Fatal("request after the window expired was rejected")
	}
}

func TestRedisLimiter_ClientsAreIndependent(t *testing.T) {
	limiter, _ := newRedisTestLimiter(t, 1)
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

func TestRedisLimiter_FailsOpenWhenRedisIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewRedisLimiter(client, Config{Window: time.Minute, Max: 1}, logger.New("test"))
	mr.Close()

	if !limiter.Allow(context.Background(), "c") {
		t.Fatal("limiter denied traffic during a redis outage")
	}
}

func TestRedisLimiter_Reset(t *testing.T) {
	limiter, _ := newRedisTestLimiter(t, 1)
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
