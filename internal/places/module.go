// Package places provides the places lookup bounded context module.
// This file defines the module that encapsulates all places setup.
package places

import (
	apphttp "placelookup_backend/internal/http"
	"placelookup_backend/internal/places/client"
	"placelookup_backend/internal/places/handler"
	"placelookup_backend/internal/places/service"
	"placelookup_backend/platform/config"
	"placelookup_backend/platform/logger"
)

// Module is the places lookup bounded context module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the places module. The module is created
// even without an upstream credential: the HTTP contract reports a 500 per
// request in that case rather than refusing to register routes.
func NewModule(cfg config.PlacesConfig, log *logger.Logger) *Module {
	apiClient := client.New(cfg.GetGoogleMapsAPIKey(), log)
	svc := service.New(apiClient, cfg.GetGoogleMapsAPIKey(), log)

	if cfg.GetGoogleMapsAPIKey() == "" {
		log.Warn("places module running without GOOGLE_MAPS_API_KEY; lookups will return configuration errors")
	}

	return &Module{handler: handler.NewHandler(svc)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "places"
}

// RegisterRoutes mounts the lookup and photo proxy routes. Both paths sit
// behind the shared per-client rate limiter.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/places")
	group.Use(ctx.RateLimit)
	group.POST("/lookup", m.handler.Lookup)
	group.GET("/photo", m.handler.Photo)
}

var _ apphttp.Module = (*Module)(nil)
