package itineraries

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"easyexplore/internal/app"
	"easyexplore/internal/models"
	"easyexplore/internal/store"
)

const (
	ownerID  int64 = 1
	collabID int64 = 2
	otherID  int64 = 3
)

type fakeStore struct {
	itineraries map[int64]*models.Itinerary
	users       map[string]*models.User
	deleted     []int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		itineraries: map[int64]*models.Itinerary{
			10: {
				ID:            10,
				Name:          "Lisbon",
				OwnerID:       ownerID,
				ShareID:       "8b7f9c3e-3f2a-4c55-9a4e-2f1d7d0c1a11",
				Collaborators: []models.UserRef{{ID: collabID, UserName: "bea", Email: "bea@example.com"}},
			},
		},
		users: map[string]*models.User{
			"ana@example.com": {ID: ownerID, UserName: "ana"},
			"bea@example.com": {ID: collabID, UserName: "bea"},
			"cid@example.com": {ID: otherID, UserName: "cid"},
		},
	}
}

func (f *fakeStore) CreateItinerary(_ context.Context, owner int64, in models.ItineraryInput) (*models.Itinerary, error) {
	it := &models.Itinerary{ID: 11, Name: in.Name, From: in.From, To: in.To, OwnerID: owner}
	f.itineraries[it.ID] = it
	return it, nil
}

func (f *fakeStore) GetItinerary(_ context.Context, id int64) (*models.Itinerary, error) {
	it, ok := f.itineraries[id]
	if !ok {
		return nil, store.ErrItineraryNotFound
	}
	return it, nil
}

func (f *fakeStore) GetItineraryByShareID(_ context.Context, shareID string) (*models.Itinerary, error) {
	for _, it := range f.itineraries {
		if it.ShareID == shareID {
			return it, nil
		}
	}
	return nil, store.ErrItineraryNotFound
}

func (f *fakeStore) ListItineraries(context.Context, int64) ([]*models.Itinerary, error) {
	return []*models.Itinerary{f.itineraries[10]}, nil
}

func (f *fakeStore) UpdateItinerary(_ context.Context, id int64, in models.ItineraryInput) (*models.Itinerary, error) {
	it := f.itineraries[id]
	it.Name = in.Name
	return it, nil
}

func (f *fakeStore) DeleteItinerary(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	delete(f.itineraries, id)
	return nil
}

func (f *fakeStore) AddItineraryAttraction(_ context.Context, id int64, place models.EnrichedPlace) error {
	it := f.itineraries[id]
	for _, a := range it.Attractions {
		if a.ID == place.ID {
			return store.ErrAttractionExists
		}
	}
	it.Attractions = append(it.Attractions, place)
	return nil
}

func (f *fakeStore) RemoveItineraryAttraction(_ context.Context, id int64, attractionID string) error {
	it := f.itineraries[id]
	for i, a := range it.Attractions {
		if a.ID == attractionID {
			it.Attractions = append(it.Attractions[:i], it.Attractions[i+1:]...)
			return nil
		}
	}
	return store.ErrAttractionNotFound
}

func (f *fakeStore) AddCollaborator(_ context.Context, id, userID int64) error {
	it := f.itineraries[id]
	for _, c := range it.Collaborators {
		if c.ID == userID {
			return store.ErrCollaboratorExists
		}
	}
	it.Collaborators = append(it.Collaborators, models.UserRef{ID: userID})
	return nil
}

func (f *fakeStore) RemoveCollaborator(_ context.Context, id, userID int64) error {
	it := f.itineraries[id]
	for i, c := range it.Collaborators {
		if c.ID == userID {
			it.Collaborators = append(it.Collaborators[:i], it.Collaborators[i+1:]...)
			return nil
		}
	}
	return store.ErrCollaboratorNotFound
}

func (f *fakeStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return u, nil
}

func day(y int, m time.Month, d int) models.Date {
	return models.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func TestCreateValidation(t *testing.T) {
	svc := New(newFakeStore())
	ctx := context.Background()

	cases := []struct {
		name string
		in   models.ItineraryInput
	}{
		{"missing name", models.ItineraryInput{From: day(2025, 5, 1), To: day(2025, 5, 3)}},
		{"missing dates", models.ItineraryInput{Name: "Trip"}},
		{"reversed dates", models.ItineraryInput{Name: "Trip", From: day(2025, 5, 3), To: day(2025, 5, 1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, ownerID, tc.in)
			assert.True(t, app.IsValidation(err), "expected validation error, got %v", err)
		})
	}

	it, err := svc.Create(ctx, ownerID, models.ItineraryInput{Name: " Trip ", From: day(2025, 5, 1), To: day(2025, 5, 1)})
	require.NoError(t, err)
	assert.Equal(t, "Trip", it.Name)
}

func TestAccessRules(t *testing.T) {
	svc := New(newFakeStore())
	ctx := context.Background()

	_, err := svc.Get(ctx, collabID, 10)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, otherID, 10)
	assert.ErrorIs(t, err, app.ErrForbidden)

	_, err = svc.Get(ctx, ownerID, 99)
	assert.ErrorIs(t, err, store.ErrItineraryNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, collabID, 10), app.ErrForbidden)
	assert.NoError(t, svc.Delete(ctx, ownerID, 10))
}

func TestUpdateByCollaborator(t *testing.T) {
	svc := New(newFakeStore())

	it, err := svc.Update(context.Background(), collabID, 10, models.ItineraryInput{Name: "Porto", From: day(2025, 6, 1), To: day(2025, 6, 2)})
	require.NoError(t, err)
	assert.Equal(t, "Porto", it.Name)
}

func TestAttractions(t *testing.T) {
	svc := New(newFakeStore())
	ctx := context.Background()
	place := models.EnrichedPlace{ID: "p1", Lat: 38.7, Lon: -9.1}

	it, err := svc.AddAttraction(ctx, collabID, 10, place)
	require.NoError(t, err)
	assert.Len(t, it.Attractions, 1)

	_, err = svc.AddAttraction(ctx, ownerID, 10, place)
	assert.ErrorIs(t, err, store.ErrAttractionExists)

	_, err = svc.AddAttraction(ctx, ownerID, 10, models.EnrichedPlace{})
	assert.True(t, app.IsValidation(err))

	it, err = svc.RemoveAttraction(ctx, ownerID, 10, "p1")
	require.NoError(t, err)
	assert.Empty(t, it.Attractions)

	_, err = svc.RemoveAttraction(ctx, ownerID, 10, "p1")
	assert.ErrorIs(t, err, store.ErrAttractionNotFound)
}

func TestAddCollaborator(t *testing.T) {
	svc := New(newFakeStore())
	ctx := context.Background()

	_, err := svc.AddCollaborator(ctx, ownerID, 10, "ana@example.com")
	assert.True(t, app.IsValidation(err))

	_, err = svc.AddCollaborator(ctx, ownerID, 10, "ghost@example.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	_, err = svc.AddCollaborator(ctx, ownerID, 10, "bea@example.com")
	assert.ErrorIs(t, err, store.ErrCollaboratorExists)

	_, err = svc.AddCollaborator(ctx, collabID, 10, "cid@example.com")
	assert.ErrorIs(t, err, app.ErrForbidden)

	it, err := svc.AddCollaborator(ctx, ownerID, 10, " cid@example.com ")
	require.NoError(t, err)
	assert.Len(t, it.Collaborators, 2)
}

func TestRemoveCollaborator(t *testing.T) {
	svc := New(newFakeStore())
	ctx := context.Background()

	_, err := svc.AddCollaborator(ctx, ownerID, 10, "cid@example.com")
	require.NoError(t, err)

	_, err = svc.RemoveCollaborator(ctx, collabID, 10, otherID)
	assert.ErrorIs(t, err, app.ErrForbidden)

	it, err := svc.RemoveCollaborator(ctx, collabID, 10, collabID)
	require.NoError(t, err)
	assert.Len(t, it.Collaborators, 1)

	it, err = svc.RemoveCollaborator(ctx, ownerID, 10, otherID)
	require.NoError(t, err)
	assert.Empty(t, it.Collaborators)
}

func TestShared(t *testing.T) {
	svc := New(newFakeStore())

	it, err := svc.Shared(context.Background(), "8b7f9c3e-3f2a-4c55-9a4e-2f1d7d0c1a11")
	require.NoError(t, err)
	assert.Equal(t, int64(10), it.ID)
	require.Len(t, it.Collaborators, 1)
	assert.Equal(t, "bea", it.Collaborators[0].UserName)
	assert.Empty(t, it.Collaborators[0].Email)

	_, err = svc.Shared(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrItineraryNotFound)
}
