package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Location sub-types accepted by SearchLocations.
const (
	LocationAirport = "AIRPORT"
	LocationCity    = "CITY"
)

// LocationsRequest describes an airport/city reference-data search.
type LocationsRequest struct {
	// Keyword matches names, IATA codes and city names. Required.
	Keyword string

	// SubTypes restricts results to AIRPORT and/or CITY.
	// Default: both.
	SubTypes []string

	// CountryCode restricts results to an ISO 3166-1 alpha-2 country.
	CountryCode string

	// Limit caps the number of results.
	Limit int
}

func (r LocationsRequest) validate() error {
	if r.Keyword == "" {
		return fmt.Errorf("%w: keyword is required", ErrInvalidRequest)
	}
	for _, st := range r.SubTypes {
		if st != LocationAirport && st != LocationCity {
			return fmt.Errorf("%w: unknown location subType %q", ErrInvalidRequest, st)
		}
	}
	return nil
}

func (r LocationsRequest) values() url.Values {
	subTypes := r.SubTypes
	if len(subTypes) == 0 {
		subTypes = []string{LocationAirport, LocationCity}
	}

	q := url.Values{}
	q.Set("keyword", r.Keyword)
	q.Set("subType", strings.Join(subTypes, ","))
	if r.CountryCode != "" {
		q.Set("countryCode", r.CountryCode)
	}
	if r.Limit > 0 {
		q.Set("page[limit]", strconv.Itoa(r.Limit))
	}
	return q
}

// SearchLocations searches airports and cities by keyword. Location data
// is near-static, so results are cached with the reference TTL.
func (c *Client) SearchLocations(ctx context.Context, req LocationsRequest) (json.RawMessage, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return c.get(ctx, "locations", "/v1/reference-data/locations", req.values(), c.policy.EffectiveReferenceTTL())
}
