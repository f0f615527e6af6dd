package saved

import (
	"context"
	"strings"

	"easyexplore/internal/app"
	"easyexplore/internal/models"
)

// Store describes the persistence operations required by the saved service.
type Store interface {
	SaveAttraction(ctx context.Context, userID int64, place models.EnrichedPlace) (*models.SavedAttraction, error)
	ListSavedAttractions(ctx context.Context, userID int64) ([]*models.SavedAttraction, error)
	DeleteSavedAttraction(ctx context.Context, userID int64, attractionID string) error
	AddFavorite(ctx context.Context, userID int64, name string) error
	ListFavorites(ctx context.Context, userID int64) ([]string, error)
}

// Service exposes bookmarked attractions and favorite place names.
type Service interface {
	Save(ctx context.Context, userID int64, place models.EnrichedPlace) (*models.SavedAttraction, error)
	List(ctx context.Context, userID int64) ([]*models.SavedAttraction, error)
	Delete(ctx context.Context, userID int64, attractionID string) error
	AddFavorite(ctx context.Context, userID int64, name string) (string, error)
	Favorites(ctx context.Context, userID int64) ([]string, error)
}

type service struct {
	store Store
}

// New wires a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Save(ctx context.Context, userID int64, place models.EnrichedPlace) (*models.SavedAttraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	place.ID = strings.TrimSpace(place.ID)
	if place.ID == "" {
		return nil, app.Invalid("attraction id is required")
	}
	if !(models.Coordinate{Lat: place.Lat, Lon: place.Lon}).Valid() {
		return nil, app.Invalid("attraction coordinates are out of range")
	}
	return s.store.SaveAttraction(ctx, userID, place)
}

func (s *service) List(ctx context.Context, userID int64) ([]*models.SavedAttraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListSavedAttractions(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID int64, attractionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(attractionID) == "" {
		return app.Invalid("attraction id is required")
	}
	return s.store.DeleteSavedAttraction(ctx, userID, attractionID)
}

func (s *service) AddFavorite(ctx context.Context, userID int64, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return "", app.Invalid("name is required")
	}
	if err := s.store.AddFavorite(ctx, userID, name); err != nil {
		return "", err
	}
	return name, nil
}

func (s *service) Favorites(ctx context.Context, userID int64) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListFavorites(ctx, userID)
}
