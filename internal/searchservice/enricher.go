package searchservice

import (
	"context"

	"golang.org/x/sync/errgroup"

	"easyexplore/internal/geoapify"
	"easyexplore/internal/logging"
	"easyexplore/internal/models"
)

// Enrich looks up details for every candidate concurrently. A failed lookup
// leaves that place with base fields only. The result has the same length
// and order as candidates.
func (s *Service) Enrich(ctx context.Context, candidates []PlaceCandidate) []models.EnrichedPlace {
	out := make([]models.EnrichedPlace, len(candidates))

	var g errgroup.Group
	if s.opts.EnrichConcurrency > 0 {
		g.SetLimit(s.opts.EnrichConcurrency)
	}

	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			out[i] = s.enrichOne(ctx, c)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (s *Service) enrichOne(ctx context.Context, c PlaceCandidate) models.EnrichedPlace {
	place := models.EnrichedPlace{
		ID:      c.ProviderID,
		Name:    c.Name,
		Lat:     c.Coordinate.Lat,
		Lon:     c.Coordinate.Lon,
		Address: c.FormattedAddress,
		Kinds:   c.Categories,
		Rating:  c.Rating,
	}

	resp, err := s.details.PlaceDetails(ctx, c.ProviderID)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Err(err).
			Str("place_id", c.ProviderID).
			Msg("place details lookup failed")
		return place
	}

	props, ok := mediaFeature(resp)
	if !ok {
		return place
	}

	place.Image = nonEmpty(props.WikiAndMedia.Image)
	place.Description = nonEmpty(props.Description)
	place.URL = nonEmpty(props.Website)
	if place.URL == nil {
		place.URL = nonEmpty(props.URL)
	}
	place.Phone = nonEmpty(props.Phone)
	place.OpeningHours = nonEmpty(props.OpeningHours)
	return place
}

// mediaFeature returns the first detail feature carrying wiki_and_media.
func mediaFeature(resp *geoapify.PlaceDetailsAPIResponse) (geoapify.PlaceDetailsProperties, bool) {
	if resp == nil {
		return geoapify.PlaceDetailsProperties{}, false
	}
	for _, f := range resp.Features {
		if f.Properties.WikiAndMedia != nil {
			return f.Properties, true
		}
	}
	return geoapify.PlaceDetailsProperties{}, false
}
