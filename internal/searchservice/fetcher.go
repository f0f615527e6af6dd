package searchservice

import (
	"context"
	"fmt"

	"easyexplore/internal/geoapify"
	"easyexplore/internal/logging"
	"easyexplore/internal/models"
)

// FetchCandidates lists points of interest within radiusMeters of center.
// Features without an id or a usable location are dropped.
func (s *Service) FetchCandidates(ctx context.Context, center models.Coordinate, radiusMeters int, category string) ([]PlaceCandidate, error) {
	if radiusMeters <= 0 {
		radiusMeters = s.opts.DefaultRadius
	}
	if category == "" {
		category = s.opts.DefaultCategory
	}

	resp, err := s.places.Places(ctx, category, center.Lat, center.Lon, radiusMeters, s.opts.ResultLimit)
	if err != nil {
		return nil, fmt.Errorf("list places: %w: %w", ErrUpstreamUnavailable, err)
	}
	if resp == nil {
		return []PlaceCandidate{}, nil
	}

	candidates := make([]PlaceCandidate, 0, len(resp.Features))
	for _, f := range resp.Features {
		candidate, ok := toCandidate(f)
		if !ok {
			logging.FromContext(ctx).Warn().
				Str("place_id", f.Properties.PlaceID).
				Msg("skipping place without id or coordinates")
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

func toCandidate(f geoapify.PlaceFeature) (PlaceCandidate, bool) {
	props := f.Properties
	if props.PlaceID == "" {
		return PlaceCandidate{}, false
	}

	var coord models.Coordinate
	switch {
	case f.Geometry != nil && len(f.Geometry.Coordinates) >= 2:
		coord = models.Coordinate{Lat: f.Geometry.Coordinates[1], Lon: f.Geometry.Coordinates[0]}
	case props.Lat != nil && props.Lon != nil:
		coord = models.Coordinate{Lat: *props.Lat, Lon: *props.Lon}
	default:
		return PlaceCandidate{}, false
	}

	categories := props.Categories
	if categories == nil {
		categories = []string{}
	}

	return PlaceCandidate{
		ProviderID:       props.PlaceID,
		Name:             nonEmpty(props.Name),
		Coordinate:       coord,
		FormattedAddress: nonEmpty(props.Formatted),
		Categories:       categories,
		Rating:           props.Rate,
	}, true
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
