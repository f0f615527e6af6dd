package searchservice

import (
	"context"
	"fmt"

	"easyexplore/internal/models"
)

// Resolve turns the query into a search centre. Explicit coordinates are
// returned without contacting the geocoder.
func (s *Service) Resolve(ctx context.Context, q Query) (models.Coordinate, error) {
	if q.Lat != nil && q.Lon != nil {
		c := models.Coordinate{Lat: *q.Lat, Lon: *q.Lon}
		if !c.Valid() {
			return models.Coordinate{}, fmt.Errorf("%w: coordinates out of range", ErrInvalidRequest)
		}
		return c, nil
	}

	name := q.locationName()
	if name == "" {
		return models.Coordinate{}, ErrInvalidRequest
	}

	resp, err := s.geocoder.Geocode(ctx, name, 1)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("geocode %q: %w: %w", name, ErrUpstreamUnavailable, err)
	}
	if resp == nil || len(resp.Features) == 0 {
		return models.Coordinate{}, fmt.Errorf("geocode %q: %w", name, ErrLocationNotFound)
	}

	props := resp.Features[0].Properties
	if props.Lat == nil || props.Lon == nil {
		return models.Coordinate{}, fmt.Errorf("geocode %q: %w", name, ErrLocationNotFound)
	}
	return models.Coordinate{Lat: *props.Lat, Lon: *props.Lon}, nil
}
