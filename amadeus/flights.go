package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// FlightOffersRequest describes a flight offers search.
type FlightOffersRequest struct {
	// OriginLocationCode is the IATA code of the departure city/airport. Required.
	OriginLocationCode string

	// DestinationLocationCode is the IATA code of the arrival city/airport. Required.
	DestinationLocationCode string

	// DepartureDate is the outbound date, ISO 8601 (YYYY-MM-DD). Required.
	DepartureDate string

	// ReturnDate makes the search a round trip when set.
	ReturnDate string

	// Adults is the number of adult travelers. Required, >= 1.
	Adults int

	// Children and Infants are additional traveler counts.
	Children int
	Infants  int

	// TravelClass restricts the cabin: ECONOMY, PREMIUM_ECONOMY, BUSINESS, FIRST.
	TravelClass string

	// NonStop restricts results to direct flights.
	NonStop bool

	// CurrencyCode is the preferred ISO 4217 currency for prices.
	CurrencyCode string

	// Max caps the number of returned offers.
	Max int
}

func (r FlightOffersRequest) validate() error {
	if r.OriginLocationCode == "" {
		return fmt.Errorf("%w: originLocationCode is required", ErrInvalidRequest)
	}
	if r.DestinationLocationCode == "" {
		return fmt.Errorf("%w: destinationLocationCode is required", ErrInvalidRequest)
	}
	if r.DepartureDate == "" {
		return fmt.Errorf("%w: departureDate is required", ErrInvalidRequest)
	}
	if r.Adults < 1 {
		return fmt.Errorf("%w: adults must be at least 1", ErrInvalidRequest)
	}
	return nil
}

func (r FlightOffersRequest) values() url.Values {
	q := url.Values{}
	q.Set("originLocationCode", r.OriginLocationCode)
	q.Set("destinationLocationCode", r.DestinationLocationCode)
	q.Set("departureDate", r.DepartureDate)
	q.Set("adults", strconv.Itoa(r.Adults))
	if r.ReturnDate != "" {
		q.Set("returnDate", r.ReturnDate)
	}
	if r.Children > 0 {
		q.Set("children", strconv.Itoa(r.Children))
	}
	if r.Infants > 0 {
		q.Set("infants", strconv.Itoa(r.Infants))
	}
	if r.TravelClass != "" {
		q.Set("travelClass", r.TravelClass)
	}
	if r.NonStop {
		q.Set("nonStop", "true")
	}
	if r.CurrencyCode != "" {
		q.Set("currencyCode", r.CurrencyCode)
	}
	if r.Max > 0 {
		q.Set("max", strconv.Itoa(r.Max))
	}
	return q
}

// SearchFlightOffers searches bookable flight offers for an itinerary.
// Results are cached with the general TTL.
func (c *Client) SearchFlightOffers(ctx context.Context, req FlightOffersRequest) (json.RawMessage, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return c.get(ctx, "flight-offers", "/v2/shopping/flight-offers", req.values(), c.policy.EffectiveTTL(0))
}

// FlightDestinationsRequest describes a cheapest-destinations search.
type FlightDestinationsRequest struct {
	// Origin is the IATA code of the departure city. Required.
	Origin string

	// DepartureDate is a date or date range (YYYY-MM-DD[,YYYY-MM-DD]).
	DepartureDate string

	// MaxPrice caps the offer price.
	MaxPrice int

	// OneWay restricts results to one-way fares.
	OneWay bool
}

func (r FlightDestinationsRequest) validate() error {
	if r.Origin == "" {
		return fmt.Errorf("%w: origin is required", ErrInvalidRequest)
	}
	return nil
}

func (r FlightDestinationsRequest) values() url.Values {
	q := url.Values{}
	q.Set("origin", r.Origin)
	if r.DepartureDate != "" {
		q.Set("departureDate", r.DepartureDate)
	}
	if r.MaxPrice > 0 {
		q.Set("maxPrice", strconv.Itoa(r.MaxPrice))
	}
	if r.OneWay {
		q.Set("oneWay", "true")
	}
	return q
}

// SearchFlightDestinations finds the cheapest destinations reachable from
// an origin. Results are cached with the general TTL.
func (c *Client) SearchFlightDestinations(ctx context.Context, req FlightDestinationsRequest) (json.RawMessage, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return c.get(ctx, "flight-destinations", "/v1/shopping/flight-destinations", req.values(), c.policy.EffectiveTTL(0))
}
