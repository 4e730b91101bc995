package service

import (
	"context"
	"strings"

	"placelookup_backend/internal/places/transport"
	"placelookup_backend/platform/apperr"
)

const (
	// photoNamePrefix is the namespace every acceptable photo resource name
	// carries. It proves the name came from a place-details response rather
	// than arbitrary caller input; anything else is rejected before any
	// outbound call.
	photoNamePrefix = "places/"

	// DefaultMaxWidthPx is the pixel bound applied when the caller does not
	// supply one.
	DefaultMaxWidthPx = 400
)

// Photo resolves an opaque photo resource name to binary image bytes.
//
// Unlike the lookup flow there is no partial-result downgrade: a binary image
// fetch either succeeds or fails.
func (s *Service) Photo(ctx context.Context, resourceName string, maxWidthPx, maxHeightPx int) (*transport.Photo, error) {
	if s.apiKey == "" {
		return nil, apperr.Internal("server configuration error: GOOGLE_MAPS_API_KEY is not set")
	}

	if !strings.HasPrefix(resourceName, photoNamePrefix) {
		return nil, apperr.Validation(`photoName must start with "places/"`)
	}

	if maxWidthPx <= 0 {
		maxWidthPx = DefaultMaxWidthPx
	}

	return s.client.PhotoMedia(ctx, resourceName, maxWidthPx, maxHeightPx)
}
