package client

import "placelookup_backend/internal/places/transport"

// geocodeResponse mirrors the relevant parts of the geocoding payload.
// Every field is optional: a shape mismatch decodes to a zero value instead
// of failing the request.
type geocodeResponse struct {
	Status  string          `json:"status"`
	Results []geocodeResult `json:"results"`
}

type geocodeResult struct {
	FormattedAddress string `json:"formatted_address"`
	PlaceID          string `json:"place_id"`
	Geometry         *struct {
		Location *struct {
			Lat *float64 `json:"lat"`
			Lng *float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	AddressComponents []struct {
		LongName  string   `json:"long_name"`
		ShortName string   `json:"short_name"`
		Types     []string `json:"types"`
	} `json:"address_components"`
}

func (r geocodeResult) toCandidate() transport.Candidate {
	candidate := transport.Candidate{
		FormattedAddress: r.FormattedAddress,
		PlaceID:          r.PlaceID,
	}

	if r.Geometry != nil && r.Geometry.Location != nil {
		candidate.Latitude = r.Geometry.Location.Lat
		candidate.Longitude = r.Geometry.Location.Lng
	}

	for _, component := range r.AddressComponents {
		candidate.AddressComponents = append(candidate.AddressComponents, transport.AddressComponent{
			LongName:  component.LongName,
			ShortName: component.ShortName,
			Types:     component.Types,
		})
	}

	return candidate
}

// placeDetailsResponse mirrors the masked place-details payload.
type placeDetailsResponse struct {
	ID          string `json:"id"`
	DisplayName *struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress         string   `json:"formattedAddress"`
	InternationalPhoneNumber string   `json:"internationalPhoneNumber"`
	WebsiteURI               string   `json:"websiteUri"`
	GoogleMapsURI            string   `json:"googleMapsUri"`
	BusinessStatus           string   `json:"businessStatus"`
	PriceLevel               string   `json:"priceLevel"`
	Rating                   *float64 `json:"rating"`
	UserRatingCount          *int     `json:"userRatingCount"`
	Types                    []string `json:"types"`
	RegularOpeningHours      *struct {
		WeekdayDescriptions []string `json:"weekdayDescriptions"`
	} `json:"regularOpeningHours"`
	Photos []struct {
		Name     string `json:"name"`
		WidthPx  int    `json:"widthPx"`
		HeightPx int    `json:"heightPx"`
	} `json:"photos"`
}

func (p placeDetailsResponse) toPlace() *transport.Place {
	place := &transport.Place{
		ID:                       p.ID,
		FormattedAddress:         p.FormattedAddress,
		InternationalPhoneNumber: p.InternationalPhoneNumber,
		WebsiteURI:               p.WebsiteURI,
		GoogleMapsURI:            p.GoogleMapsURI,
		BusinessStatus:           p.BusinessStatus,
		PriceLevel:               p.PriceLevel,
		Rating:                   p.Rating,
		UserRatingCount:          p.UserRatingCount,
		Types:                    p.Types,
	}

	if p.DisplayName != nil {
		place.DisplayName = p.DisplayName.Text
	}
	if p.RegularOpeningHours != nil {
		place.WeekdayDescriptions = p.RegularOpeningHours.WeekdayDescriptions
	}
	for _, photo := range p.Photos {
		place.Photos = append(place.Photos, transport.PlacePhoto{
			Name:     photo.Name,
			WidthPx:  photo.WidthPx,
			HeightPx: photo.HeightPx,
		})
	}

	return place
}

// photoMediaResponse is the JSON-wrapped media URL protocol of the photo call.
type photoMediaResponse struct {
	Name     string `json:"name"`
	PhotoURI string `json:"photoUri"`
}
