// Package transport defines the request and response shapes of the places
// lookup endpoints.
package transport

// LookupRequest is the POST body for the address lookup endpoint.
// SelectedIndex is a pointer so "absent" and "zero" stay distinguishable.
type LookupRequest struct {
	Address       string `json:"address" binding:"required" validate:"required"`
	SelectedIndex *int   `json:"selectedIndex" binding:"omitempty,gte=0" validate:"omitempty,gte=0"`
}

// AddressComponent is one structured part of a geocoded address.
type AddressComponent struct {
	LongName  string   `json:"longName"`
	ShortName string   `json:"shortName"`
	Types     []string `json:"types"`
}

// Candidate is one ranked geocoding match for a free-text address query.
// Latitude and Longitude are pointers: upstream records without geometry are
// kept with null coordinates rather than dropped.
type Candidate struct {
	FormattedAddress  string             `json:"formattedAddress"`
	PlaceID           string             `json:"placeId,omitempty"`
	Latitude          *float64           `json:"latitude"`
	Longitude         *float64           `json:"longitude"`
	AddressComponents []AddressComponent `json:"addressComponents,omitempty"`
}

// PlacePhoto references one photo asset of a place. Name is the opaque
// resource name the photo proxy accepts.
type PlacePhoto struct {
	Name     string `json:"name"`
	WidthPx  int    `json:"widthPx,omitempty"`
	HeightPx int    `json:"heightPx,omitempty"`
}

// Place is the enriched record for one physical place. Every attribute is
// optional: availability varies per place, and absent upstream fields must
// decode to zero values instead of failing.
type Place struct {
	ID                       string       `json:"id,omitempty"`
	DisplayName              string       `json:"displayName,omitempty"`
	FormattedAddress         string       `json:"formattedAddress,omitempty"`
	InternationalPhoneNumber string       `json:"internationalPhoneNumber,omitempty"`
	WebsiteURI               string       `json:"websiteUri,omitempty"`
	GoogleMapsURI            string       `json:"googleMapsUri,omitempty"`
	BusinessStatus           string       `json:"businessStatus,omitempty"`
	PriceLevel               string       `json:"priceLevel,omitempty"`
	Rating                   *float64     `json:"rating,omitempty"`
	UserRatingCount          *int         `json:"userRatingCount,omitempty"`
	Types                    []string     `json:"types,omitempty"`
	WeekdayDescriptions      []string     `json:"weekdayDescriptions,omitempty"`
	Photos                   []PlacePhoto `json:"photos,omitempty"`
}

// LookupResult is the full response of one address lookup.
// Place is null when enrichment was skipped or failed; that is a valid,
// reportable outcome, not an error.
type LookupResult struct {
	Query         string      `json:"query"`
	Candidates    []Candidate `json:"candidates"`
	SelectedIndex int         `json:"selectedIndex"`
	Place         *Place      `json:"place"`
	Warnings      []string    `json:"warnings"`
	ElapsedMs     int64       `json:"elapsedMs"`
}

// Photo is a resolved place photo ready to stream back to the caller.
type Photo struct {
	Bytes       []byte
	ContentType string
}
