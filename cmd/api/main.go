package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apphttp "placelookup_backend/internal/http"
	"placelookup_backend/internal/http/router"
	"placelookup_backend/internal/places"
	"placelookup_backend/internal/ratelimit"
	"placelookup_backend/platform/config"
	"placelookup_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

// sweepInterval is how often the memory limiter evicts idle clients.
const sweepInterval = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := newLimiter(ctx, cfg, log)

	placesModule := places.NewModule(cfg, log)

	app := &apphttp.App{
		Config:  cfg,
		Logger:  log,
		Limiter: limiter,
		Modules: []apphttp.Module{
			placesModule,
		},
	}

	engine := router.New(app)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}

	log.Info("server shutdown complete")
}

// newLimiter selects the rate limiter backend: redis when configured so the
// budget holds across replicas, otherwise in-process memory with a periodic
// sweep to bound its footprint.
func newLimiter(ctx context.Context, cfg *config.Config, log *logger.Logger) ratelimit.Limiter {
	policy := ratelimit.Config{
		Window: cfg.GetRateLimitWindow(),
		Max:    cfg.GetRateLimitMax(),
	}

	if cfg.IsRedisEnabled() {
		opts, err := redis.ParseURL(cfg.GetRedisURL())
		if err != nil {
			panic("invalid REDIS_URL: " + err.Error())
		}
		log.Info("rate limiter using redis backend")
		return ratelimit.NewRedisLimiter(redis.NewClient(opts), policy, log)
	}

	limiter := ratelimit.NewMemoryLimiter(policy)
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				limiter.Sweep()
			}
		}
	}()

	log.Info("rate limiter using memory backend",
		"window", policy.Window.String(), "max", policy.Max)
	return limiter
}
