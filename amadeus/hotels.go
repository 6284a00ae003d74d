package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// HotelsByCityRequest describes a hotel list lookup for a city.
type HotelsByCityRequest struct {
	// CityCode is the IATA city code. Required.
	CityCode string

	// Radius is the search radius around the city center.
	Radius int

	// RadiusUnit is KM or MILE. Default upstream: KM.
	RadiusUnit string

	// Ratings restricts hotels to the given star ratings (1-5).
	Ratings []int

	// Amenities restricts hotels to those offering the given amenities.
	Amenities []string
}

func (r HotelsByCityRequest) validate() error {
	if r.CityCode == "" {
		return fmt.Errorf("%w: cityCode is required", ErrInvalidRequest)
	}
	for _, rating := range r.Ratings {
		if rating < 1 || rating > 5 {
			return fmt.Errorf("%w: rating %d out of range 1-5", ErrInvalidRequest, rating)
		}
	}
	return nil
}

func (r HotelsByCityRequest) values() url.Values {
	q := url.Values{}
	q.Set("cityCode", r.CityCode)
	if r.Radius > 0 {
		q.Set("radius", strconv.Itoa(r.Radius))
	}
	if r.RadiusUnit != "" {
		q.Set("radiusUnit", r.RadiusUnit)
	}
	if len(r.Ratings) > 0 {
		ratings := make([]string, len(r.Ratings))
		for i, rating := range r.Ratings {
			ratings[i] = strconv.Itoa(rating)
		}
		q.Set("ratings", strings.Join(ratings, ","))
	}
	if len(r.Amenities) > 0 {
		q.Set("amenities", strings.Join(r.Amenities, ","))
	}
	return q
}

// ListHotelsByCity lists hotels in a city. Hotel reference data is
// near-static, so results are cached with the reference TTL.
func (c *Client) ListHotelsByCity(ctx context.Context, req HotelsByCityRequest) (json.RawMessage, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return c.get(ctx, "hotels-by-city", "/v1/reference-data/locations/hotels/by-city", req.values(), c.policy.EffectiveReferenceTTL())
}

// HotelOffersRequest describes a hotel offers search.
type HotelOffersRequest struct {
	// HotelIDs are the Amadeus hotel ids to search. Required.
	HotelIDs []string

	// CheckInDate and CheckOutDate are ISO 8601 dates.
	CheckInDate  string
	CheckOutDate string

	// Adults is the number of adult guests per room. Required, >= 1.
	Adults int

	// RoomQuantity is the number of rooms.
	RoomQuantity int

	// CurrencyCode is the preferred ISO 4217 currency for rates.
	CurrencyCode string
}

func (r HotelOffersRequest) validate() error {
	if len(r.HotelIDs) == 0 {
		return fmt.Errorf("%w: at least one hotelId is required", ErrInvalidRequest)
	}
	if r.Adults < 1 {
		return fmt.Errorf("%w: adults must be at least 1", ErrInvalidRequest)
	}
	return nil
}

func (r HotelOffersRequest) values() url.Values {
	q := url.Values{}
	q.Set("hotelIds", strings.Join(r.HotelIDs, ","))
	q.Set("adults", strconv.Itoa(r.Adults))
	if r.CheckInDate != "" {
		q.Set("checkInDate", r.CheckInDate)
	}
	if r.CheckOutDate != "" {
		q.Set("checkOutDate", r.CheckOutDate)
	}
	if r.RoomQuantity > 0 {
		q.Set("roomQuantity", strconv.Itoa(r.RoomQuantity))
	}
	if r.CurrencyCode != "" {
		q.Set("currencyCode", r.CurrencyCode)
	}
	return q
}

// SearchHotelOffers searches bookable offers for the given hotels.
// Rates are volatile, so results are cached with the general TTL.
func (c *Client) SearchHotelOffers(ctx context.Context, req HotelOffersRequest) (json.RawMessage, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return c.get(ctx, "hotel-offers", "/v3/shopping/hotel-offers", req.values(), c.policy.EffectiveTTL(0))
}
