// Package client provides the HTTP client for the Google geocoding and
// places upstreams.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"placelookup_backend/internal/places/transport"
	"placelookup_backend/platform/apperr"
	"placelookup_backend/platform/logger"
)

const (
	defaultGeocodeBaseURL = "https://maps.googleapis.com"
	defaultPlacesBaseURL  = "https://places.googleapis.com"

	// fieldMask is the fixed, versioned list of place attributes requested
	// from the details call. Pinning it guards against silently receiving
	// more or less data when the upstream's default field set changes.
	fieldMask = "id,displayName,formattedAddress,internationalPhoneNumber,websiteUri," +
		"googleMapsUri,businessStatus,priceLevel,rating,userRatingCount,types," +
		"regularOpeningHours.weekdayDescriptions,photos.name,photos.widthPx,photos.heightPx"

	// maxErrorBodyBytes caps how much of an upstream error body is carried
	// into error messages.
	maxErrorBodyBytes = 4 << 10
)

// Client is the HTTP client for the geocoding, place-details, and photo-media
// upstreams.
type Client struct {
	httpClient *http.Client
	// noRedirectClient surfaces 3xx responses instead of following them, so
	// the photo proxy can handle the redirect protocol itself.
	noRedirectClient *http.Client
	apiKey           string
	geocodeBaseURL   string
	placesBaseURL    string
	log              *logger.Logger
}

// Option customizes a Client, mainly for tests.
type Option func(*Client)

// WithGeocodeBaseURL overrides the geocoding upstream base URL.
func WithGeocodeBaseURL(base string) Option {
	return func(c *Client) { c.geocodeBaseURL = strings.TrimRight(base, "/") }
}

// WithPlacesBaseURL overrides the places upstream base URL.
func WithPlacesBaseURL(base string) Option {
	return func(c *Client) { c.placesBaseURL = strings.TrimRight(base, "/") }
}

// New creates a new upstream client.
func New(apiKey string, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		noRedirectClient: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		apiKey:         apiKey,
		geocodeBaseURL: defaultGeocodeBaseURL,
		placesBaseURL:  defaultPlacesBaseURL,
		log:            log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Geocode resolves a free-text address into ranked candidates, preserving the
// upstream order. A zero-match response returns an empty slice and no error.
func (c *Client) Geocode(ctx context.Context, address string) ([]transport.Candidate, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", c.apiKey)

	reqURL := fmt.Sprintf("%s/maps/api/geocode/json?%s", c.geocodeBaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("geocoding request failed", "error", err)
		return nil, apperr.Wrap(apperr.KindUpstream, "geocoding service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.UpstreamError("geocoding", resp.StatusCode, nil)
		return nil, apperr.Upstream(fmt.Sprintf("geocoding request failed with status %d", resp.StatusCode))
	}

	var payload geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Error("geocoding decode failed", "error", err)
		return nil, apperr.Wrap(apperr.KindUpstream, "geocoding response could not be decoded", err)
	}

	switch payload.Status {
	case "OK", "ZERO_RESULTS", "":
		// ZERO_RESULTS and an empty results array are both valid empty sets.
	default:
		c.log.UpstreamError("geocoding", resp.StatusCode, fmt.Errorf("status %s", payload.Status))
		return nil, apperr.Upstream(fmt.Sprintf("geocoding request failed: %s", payload.Status))
	}

	candidates := make([]transport.Candidate, 0, len(payload.Results))
	for _, raw := range payload.Results {
		candidates = append(candidates, raw.toCandidate())
	}

	return candidates, nil
}

// PlaceDetails fetches the enriched record for one place identifier, always
// requesting the pinned field mask.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (*transport.Place, error) {
	reqURL := fmt.Sprintf("%s/v1/places/%s", c.placesBaseURL, url.PathEscape(placeID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("place details request failed", "error", err, "place_id", placeID)
		return nil, apperr.Wrap(apperr.KindUpstream, "place details service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		c.log.UpstreamError("place-details", resp.StatusCode, nil)
		return nil, apperr.Upstream(fmt.Sprintf("place details request failed with status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var payload placeDetailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Error("place details decode failed", "error", err, "place_id", placeID)
		return nil, apperr.Wrap(apperr.KindUpstream, "place details response could not be decoded", err)
	}

	return payload.toPlace(), nil
}

// PhotoMedia resolves an opaque photo resource name to image bytes.
//
// The upstream is asked to skip the HTTP redirect, but that request is not
// guaranteed honored, so three response protocols are handled in fixed
// priority order: a JSON-wrapped media URL, an explicit 3xx redirect, and a
// direct binary body. None of the three can be assumed dead.
func (c *Client) PhotoMedia(ctx context.Context, resourceName string, maxWidthPx, maxHeightPx int) (*transport.Photo, error) {
	params := url.Values{}
	params.Set("maxWidthPx", strconv.Itoa(maxWidthPx))
	if maxHeightPx > 0 {
		params.Set("maxHeightPx", strconv.Itoa(maxHeightPx))
	}
	params.Set("skipHttpRedirect", "true")

	reqURL := fmt.Sprintf("%s/v1/%s/media?%s", c.placesBaseURL, resourceName, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Goog-Api-Key", c.apiKey)

	resp, err := c.noRedirectClient.Do(req)
	if err != nil {
		c.log.Error("photo media request failed", "error", err, "resource", resourceName)
		return nil, apperr.Wrap(apperr.KindUpstream, "photo service unreachable", err)
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices &&
		strings.Contains(contentType, "application/json"):
		return c.photoFromJSON(ctx, resp.Body)

	case resp.StatusCode >= http.StatusMultipleChoices && resp.StatusCode < http.StatusBadRequest:
		location := resp.Header.Get("Location")
		if location == "" {
			return nil, apperr.Upstream("photo redirect response is missing a location header")
		}
		return c.fetchImage(ctx, location)

	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		bytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindUpstream, "photo body could not be read", err)
		}
		return &transport.Photo{Bytes: bytes, ContentType: contentType}, nil

	default:
		c.log.UpstreamError("photo-media", resp.StatusCode, nil)
		return nil, apperr.Upstream(fmt.Sprintf("photo request failed with status %d", resp.StatusCode))
	}
}

// photoFromJSON handles the JSON-wrapped media URL protocol.
func (c *Client) photoFromJSON(ctx context.Context, body io.Reader) (*transport.Photo, error) {
	var payload photoMediaResponse
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "photo media response could not be decoded", err)
	}
	if payload.PhotoURI == "" {
		return nil, apperr.Upstream("photo media response did not contain a photo URI")
	}
	return c.fetchImage(ctx, payload.PhotoURI)
}

// fetchImage performs the secondary fetch against the URL the media call yielded.
func (c *Client) fetchImage(ctx context.Context, imageURL string) (*transport.Photo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("photo fetch failed", "error", err)
		return nil, apperr.Wrap(apperr.KindUpstream, "photo could not be fetched", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.UpstreamError("photo-fetch", resp.StatusCode, nil)
		return nil, apperr.Upstream(fmt.Sprintf("photo fetch failed with status %d", resp.StatusCode))
	}

	bytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "photo body could not be read", err)
	}

	return &transport.Photo{Bytes: bytes, ContentType: resp.Header.Get("Content-Type")}, nil
}
