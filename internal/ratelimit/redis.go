package ratelimit

import (
	"context"
	"strconv"
	"time"

	"placelookup_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// RedisLimiter enforces the sliding window across replicas using one sorted
// set per client key, scored by request time. Members older than the window
// are trimmed before the count is evaluated, so the semantics match the
// memory backend.
//
// When redis is unreachable the limiter fails open: throttling is a
// protection layer, not a correctness requirement, and denying all traffic on
// a redis outage would turn it into one.
type RedisLimiter struct {
	client *redis.Client
	cfg    Config
	log    *logger.Logger

	now func() time.Time
}

// NewRedisLimiter creates a redis-backed limiter with the given window policy.
func NewRedisLimiter(client *redis.Client, cfg Config, log *logger.Logger) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		cfg:    cfg,
		log:    log,
		now:    time.Now,
	}
}

// Allow records the request for clientKey and reports whether it is admitted.
func (r *RedisLimiter) Allow(ctx context.Context, clientKey string) bool {
	key := redisKeyPrefix + clientKey
	now := r.now()
	cutoff := now.Add(-r.cfg.Window)

	pipe := r.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(cutoff.UnixNano(), 10))
	// Member must be unique per request; two requests in the same nanosecond
	// would otherwise collapse into one sorted-set entry.
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: uuid.NewString(),
	})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.cfg.Window)

	if _, err := pipe.Exec(ctx); err != nil {
		if r.log != nil {
			r.log.Error("rate limiter redis failure, admitting request", "error", err, "client_key", clientKey)
		}
		return true
	}

	return count.Val() <= int64(r.cfg.Max)
}

// Reset clears all recorded request state.
func (r *RedisLimiter) Reset() {
	ctx := context.Background()
	iter := r.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		r.client.Del(ctx, iter.Val())
	}
}
