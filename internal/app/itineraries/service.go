package itineraries

import (
	"context"
	"strings"

	"easyexplore/internal/app"
	"easyexplore/internal/models"
)

// Store describes the persistence operations required by the itinerary service.
type Store interface {
	CreateItinerary(ctx context.Context, ownerID int64, in models.ItineraryInput) (*models.Itinerary, error)
	GetItinerary(ctx context.Context, id int64) (*models.Itinerary, error)
	GetItineraryByShareID(ctx context.Context, shareID string) (*models.Itinerary, error)
	ListItineraries(ctx context.Context, userID int64) ([]*models.Itinerary, error)
	UpdateItinerary(ctx context.Context, id int64, in models.ItineraryInput) (*models.Itinerary, error)
	DeleteItinerary(ctx context.Context, id int64) error
	AddItineraryAttraction(ctx context.Context, itineraryID int64, place models.EnrichedPlace) error
	RemoveItineraryAttraction(ctx context.Context, itineraryID int64, attractionID string) error
	AddCollaborator(ctx context.Context, itineraryID, userID int64) error
	RemoveCollaborator(ctx context.Context, itineraryID, userID int64) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service exposes itinerary planning workflows.
type Service interface {
	List(ctx context.Context, userID int64) ([]*models.Itinerary, error)
	Create(ctx context.Context, userID int64, in models.ItineraryInput) (*models.Itinerary, error)
	Get(ctx context.Context, userID, id int64) (*models.Itinerary, error)
	Update(ctx context.Context, userID, id int64, in models.ItineraryInput) (*models.Itinerary, error)
	Delete(ctx context.Context, userID, id int64) error
	AddAttraction(ctx context.Context, userID, id int64, place models.EnrichedPlace) (*models.Itinerary, error)
	RemoveAttraction(ctx context.Context, userID, id int64, attractionID string) (*models.Itinerary, error)
	AddCollaborator(ctx context.Context, userID, id int64, email string) (*models.Itinerary, error)
	RemoveCollaborator(ctx context.Context, userID, id, collaboratorID int64) (*models.Itinerary, error)
	Shared(ctx context.Context, shareID string) (*models.Itinerary, error)
}

type service struct {
	store Store
}

// New wires a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context, userID int64) ([]*models.Itinerary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListItineraries(ctx, userID)
}

func (s *service) Create(ctx context.Context, userID int64, in models.ItineraryInput) (*models.Itinerary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	in, err := validateInput(in)
	if err != nil {
		return nil, err
	}
	return s.store.CreateItinerary(ctx, userID, in)
}

func (s *service) Get(ctx context.Context, userID, id int64) (*models.Itinerary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.load(ctx, userID, id, false)
}

func (s *service) Update(ctx context.Context, userID, id int64, in models.ItineraryInput) (*models.Itinerary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	in, err := validateInput(in)
	if err != nil {
		return nil, err
	}
	if _, err := s.load(ctx, userID, id, false); err != nil {
		return nil, err
	}
	return s.store.UpdateItinerary(ctx, id, in)
}

func (s *service) Delete(ctx context.Context, userID, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.load(ctx, userID, id, true); err != nil {
		return err
	}
	return s.store.DeleteItinerary(ctx, id)
}

func (s *service) AddAttraction(ctx context.Context, userID, id int64, place models.EnrichedPlace) (*models.Itinerary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	place.ID = strings.TrimSpace(place.ID)
	if place.ID == "" {
		return nil, app.Invalid("attraction id is required")
	}
	if _, err := s.load(ctx, userID, id, false); err != nil {
		return nil, err
	}
	if err := s.store.AddItineraryAttraction(ctx, id, place); err != nil {
		return nil, err
	}
	return s.store.GetItinerary(ctx, id)
}

func (s *service) RemoveAttraction(ctx context.Context, userID, id int64, attractionID string) (*models.Itinerary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := s.load(ctx, userID, id, false); err != nil {
		return nil, err
	}
	if err := s.store.RemoveItineraryAttraction(ctx, id, attractionID); err != nil {
		return nil, err
	}
	return s.store.GetItinerary(ctx, id)
}

func (s *service) AddCollaborator(ctx context.Context, userID, id int64, email string) (*models.Itinerary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, app.Invalid("collaboratorEmail is required")
	}
	if _, err := s.load(ctx, userID, id, true); err != nil {
		return nil, err
	}

	collaborator, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if collaborator.ID == userID {
		return nil, app.Invalid("you cannot add yourself as a collaborator")
	}
	if err := s.store.AddCollaborator(ctx, id, collaborator.ID); err != nil {
		return nil, err
	}
	return s.store.GetItinerary(ctx, id)
}

// RemoveCollaborator lets the owner revoke anyone and a collaborator leave.
func (s *service) RemoveCollaborator(ctx context.Context, userID, id, collaboratorID int64) (*models.Itinerary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	it, err := s.load(ctx, userID, id, false)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != userID && collaboratorID != userID {
		return nil, app.ErrForbidden
	}
	if err := s.store.RemoveCollaborator(ctx, id, collaboratorID); err != nil {
		return nil, err
	}
	return s.store.GetItinerary(ctx, id)
}

func (s *service) Shared(ctx context.Context, shareID string) (*models.Itinerary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	it, err := s.store.GetItineraryByShareID(ctx, strings.TrimSpace(shareID))
	if err != nil {
		return nil, err
	}
	it.HideCollaboratorEmails()
	return it, nil
}

// load fetches the itinerary and checks the caller may act on it.
func (s *service) load(ctx context.Context, userID, id int64, ownerOnly bool) (*models.Itinerary, error) {
	it, err := s.store.GetItinerary(ctx, id)
	if err != nil {
		return nil, err
	}
	if it.OwnerID == userID {
		return it, nil
	}
	if !ownerOnly && isCollaborator(it, userID) {
		return it, nil
	}
	return nil, app.ErrForbidden
}

func isCollaborator(it *models.Itinerary, userID int64) bool {
	for _, c := range it.Collaborators {
		if c.ID == userID {
			return true
		}
	}
	return false
}

func validateInput(in models.ItineraryInput) (models.ItineraryInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	switch {
	case in.Name == "":
		return in, app.Invalid("name is required")
	case in.From.IsZero() || in.To.IsZero():
		return in, app.Invalid("from and to dates are required")
	case in.To.Before(in.From.Time):
		return in, app.Invalid("end date must not be before start date")
	}
	return in, nil
}
