// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"placelookup_backend/internal/ratelimit"
	"placelookup_backend/platform/config"
	"placelookup_backend/platform/logger"
)

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the HTTP server configuration.
	Config config.HTTPConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Limiter is the shared per-client request limiter.
	Limiter ratelimit.Limiter
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
