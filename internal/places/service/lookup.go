package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"placelookup_backend/internal/places/transport"
	"placelookup_backend/platform/apperr"
)

// Lookup turns one address string into a ranked set of geocode candidates and
// an enriched place record.
//
// Failures in the geocoding step are fatal and surface as errors. Failures in
// the enrichment step are absorbed into the warnings list so the caller
// always gets a usable geocode result.
func (s *Service) Lookup(ctx context.Context, req transport.LookupRequest) (*transport.LookupResult, error) {
	if s.apiKey == "" {
		return nil, apperr.Internal("server configuration error: GOOGLE_MAPS_API_KEY is not set")
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, apperr.Validation("address must be present and selectedIndex, when given, non-negative")
	}
	address := strings.TrimSpace(req.Address)
	if address == "" {
		return nil, apperr.Validation("address must be a non-empty string")
	}

	start := time.Now()

	candidates, warnings, err := s.resolve(ctx, address)
	if err != nil {
		return nil, err
	}

	result := &transport.LookupResult{
		Query:      address,
		Candidates: candidates,
		Warnings:   warnings,
	}

	if len(candidates) == 0 {
		result.ElapsedMs = time.Since(start).Milliseconds()
		return result, nil
	}

	result.SelectedIndex = effectiveIndex(req.SelectedIndex, len(candidates))

	place, enrichWarnings, err := s.enrich(ctx, candidates[result.SelectedIndex])
	if err != nil {
		// Enrichment is non-fatal: downgrade to a warning and leave the
		// place null.
		s.log.Warn("place enrichment failed", "error", err, "query", address)
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not load place details: %v", err))
	} else {
		result.Place = place
		result.Warnings = append(result.Warnings, enrichWarnings...)
	}

	result.ElapsedMs = time.Since(start).Milliseconds()
	return result, nil
}

// resolve invokes the forward-geocoding upstream and normalizes the outcome.
// An empty result set is a success with a warning, not an error.
func (s *Service) resolve(ctx context.Context, address string) ([]transport.Candidate, []string, error) {
	candidates, err := s.client.Geocode(ctx, address)
	if err != nil {
		return nil, nil, err
	}

	warnings := make([]string, 0, 1)
	switch {
	case len(candidates) == 0:
		warnings = append(warnings, warnNoMatch)
	case len(candidates) > 1:
		warnings = append(warnings, warnMultipleMatches)
	}

	return candidates, warnings, nil
}

// enrich fetches the extended place record for the selected candidate.
// A candidate without a place identifier skips the upstream call entirely.
func (s *Service) enrich(ctx context.Context, candidate transport.Candidate) (*transport.Place, []string, error) {
	if candidate.PlaceID == "" {
		return nil, []string{warnNoPlaceID}, nil
	}

	place, err := s.client.PlaceDetails(ctx, candidate.PlaceID)
	if err != nil {
		return nil, nil, err
	}

	return place, []string{warnDataSource}, nil
}

// effectiveIndex applies the caller's zero-based override: absent or out of
// bounds falls back to the best match at index 0.
func effectiveIndex(requested *int, count int) int {
	if requested == nil {
		return 0
	}
	if *requested < 0 || *requested >= count {
		return 0
	}
	return *requested
}
