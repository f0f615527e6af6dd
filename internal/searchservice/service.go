package searchservice

import (
	"context"
	"strings"

	"easyexplore/internal/geoapify"
	"easyexplore/internal/logging"
	"easyexplore/internal/models"
)

const (
	defaultRadiusMeters = 5000
	defaultCategory     = "tourism.attraction"
	defaultResultLimit  = 20
)

// Geocoder resolves a place name to candidate locations.
type Geocoder interface {
	Geocode(ctx context.Context, text string, limit int) (*geoapify.GeocodeAPIResponse, error)
}

// PlacesProvider lists points of interest around a centre.
type PlacesProvider interface {
	Places(ctx context.Context, categories string, lat, lon float64, radiusMeters, limit int) (*geoapify.PlacesAPIResponse, error)
}

// DetailsProvider looks up the detail record of a single place.
type DetailsProvider interface {
	PlaceDetails(ctx context.Context, placeID string) (*geoapify.PlaceDetailsAPIResponse, error)
}

// Options tunes the pipeline. Zero values fall back to defaults.
type Options struct {
	ResultLimit       int
	DefaultRadius     int
	DefaultCategory   string
	EnrichConcurrency int
}

// Query describes one attraction search.
type Query struct {
	FreeText     string
	City         string
	State        string
	Country      string
	Lat          *float64
	Lon          *float64
	RadiusMeters int
	Category     string
}

// PlaceCandidate is a raw point of interest before enrichment.
type PlaceCandidate struct {
	ProviderID       string
	Name             *string
	Coordinate       models.Coordinate
	FormattedAddress *string
	Categories       []string
	Rating           *float64
}

// Service runs the resolve, fetch, enrich and rank pipeline.
type Service struct {
	geocoder Geocoder
	places   PlacesProvider
	details  DetailsProvider
	opts     Options
}

// NewService wires the pipeline to a Geoapify client.
func NewService(client *geoapify.Client, opts Options) *Service {
	return NewServiceWithProviders(client, client, client, opts)
}

// NewServiceWithProviders wires the pipeline to arbitrary providers.
func NewServiceWithProviders(geocoder Geocoder, places PlacesProvider, details DetailsProvider, opts Options) *Service {
	if opts.ResultLimit <= 0 {
		opts.ResultLimit = defaultResultLimit
	}
	if opts.DefaultRadius <= 0 {
		opts.DefaultRadius = defaultRadiusMeters
	}
	if opts.DefaultCategory == "" {
		opts.DefaultCategory = defaultCategory
	}
	return &Service{
		geocoder: geocoder,
		places:   places,
		details:  details,
		opts:     opts,
	}
}

// Search resolves the query to a centre, lists nearby attractions, enriches
// each one and ranks the result by keyword match.
func (s *Service) Search(ctx context.Context, q Query) ([]models.EnrichedPlace, error) {
	center, err := s.Resolve(ctx, q)
	if err != nil {
		return nil, err
	}

	candidates, err := s.FetchCandidates(ctx, center, q.RadiusMeters, q.Category)
	if err != nil {
		return nil, err
	}

	enriched := s.Enrich(ctx, candidates)
	ranked := Rank(enriched, q.FreeText)

	logging.FromContext(ctx).Debug().
		Float64("lat", center.Lat).
		Float64("lon", center.Lon).
		Int("results", len(ranked)).
		Msg("attraction search completed")

	return ranked, nil
}

// locationName picks the geocoding text: free text wins, otherwise the
// non-empty parts of city, state and country.
func (q Query) locationName() string {
	if text := strings.TrimSpace(q.FreeText); text != "" {
		return text
	}
	var parts []string
	for _, p := range []string{q.City, q.State, q.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
