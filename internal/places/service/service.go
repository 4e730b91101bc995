// Package service implements the places lookup orchestration: geocode
// resolution, place enrichment, and the photo proxy.
package service

import (
	"placelookup_backend/internal/places/client"
	"placelookup_backend/platform/logger"
	"placelookup_backend/platform/validator"
)

// Warnings surfaced in lookup responses. These are part of the response
// contract: partial failures and data caveats are reported as strings, never
// as errors.
const (
	warnNoMatch         = "No match found"
	warnMultipleMatches = "Multiple matches found; showing the best match by default"
	warnNoPlaceID       = "Place details are unavailable for this result"
	warnDataSource      = "Place details come from the Google Places API; attribute availability varies per place"
)

// Service orchestrates the lookup and photo flows.
type Service struct {
	client   *client.Client
	apiKey   string
	validate *validator.Validator
	log      *logger.Logger
}

// New creates the places service. apiKey may be empty: the credential check
// happens per request so the server can boot unconfigured and report a
// configuration error over HTTP.
func New(apiClient *client.Client, apiKey string, log *logger.Logger) *Service {
	return &Service{
		client:   apiClient,
		apiKey:   apiKey,
		validate: validator.New(),
		log:      log,
	}
}
