package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"easyexplore/internal/models"
)

var itineraryColumnList = []string{
	"id", "owner_id", "name", "from_date", "to_date", "is_public", "share_id", "created_at", "updated_at",
}

const testShareID = "6f1c1c43-55e3-4c4b-9a1e-1d2f7f0d9a10"

func itineraryRow(id, owner int64, name string) []driver.Value {
	return []driver.Value{
		id, owner, name,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		false, testShareID, fixedTime, fixedTime,
	}
}

func expectHydrate(mock sqlmock.Sqlmock, id int64, attractions *sqlmock.Rows, collaborators *sqlmock.Rows) {
	mock.ExpectQuery(regexp.QuoteMeta(`FROM itinerary_attractions`)).
		WithArgs(id).
		WillReturnRows(attractions)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM itinerary_collaborators c`)).
		WithArgs(id).
		WillReturnRows(collaborators)
}

func TestCreateItinerary(t *testing.T) {
	s, mock := newMockStore(t)
	from, _ := models.ParseDate("2025-06-01")
	to, _ := models.ParseDate("2025-06-05")

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO itineraries`)).
		WithArgs(int64(3), "Portugal", from.Time, to.Time, true, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(itineraryColumnList).AddRow(itineraryRow(10, 3, "Portugal")...))

	it, err := s.CreateItinerary(context.Background(), 3, models.ItineraryInput{
		Name: "Portugal", From: from, To: to, IsPublic: true,
	})
	if err != nil {
		t.Fatalf("CreateItinerary error: %v", err)
	}
	if it.ID != 10 || it.ShareID != testShareID {
		t.Fatalf("unexpected itinerary %#v", it)
	}
	if it.From.Format("2006-01-02") != "2025-06-01" {
		t.Fatalf("unexpected from date %v", it.From)
	}
	if it.Attractions == nil || it.Collaborators == nil {
		t.Fatal("expected empty attraction and collaborator slices")
	}
}

func TestGetItineraryHydrates(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM itineraries WHERE id = $1`)).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows(itineraryColumnList).AddRow(itineraryRow(10, 3, "Portugal")...))
	expectHydrate(mock, 10,
		sqlmock.NewRows([]string{"place"}).
			AddRow([]byte(`{"id":"abc","name":"Belem Tower","lat":38.69,"lon":-9.21,"kinds":["tourism.sights"]}`)),
		sqlmock.NewRows([]string{"id", "username", "email"}).
			AddRow(int64(5), "friend", "friend@example.com"),
	)

	it, err := s.GetItinerary(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetItinerary error: %v", err)
	}
	if len(it.Attractions) != 1 || *it.Attractions[0].Name != "Belem Tower" {
		t.Fatalf("unexpected attractions %#v", it.Attractions)
	}
	if len(it.Collaborators) != 1 || it.Collaborators[0].UserName != "friend" {
		t.Fatalf("unexpected collaborators %#v", it.Collaborators)
	}
}

func TestGetItineraryNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM itineraries WHERE id = $1`)).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	if _, err := s.GetItinerary(context.Background(), 404); !errors.Is(err, ErrItineraryNotFound) {
		t.Fatalf("expected ErrItineraryNotFound, got %v", err)
	}
}

func TestGetItineraryByShareIDRejectsMalformedID(t *testing.T) {
	s, _ := newMockStore(t)

	if _, err := s.GetItineraryByShareID(context.Background(), "not-a-uuid"); !errors.Is(err, ErrItineraryNotFound) {
		t.Fatalf("expected ErrItineraryNotFound, got %v", err)
	}
}

func TestListItineraries(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`itinerary_collaborators WHERE user_id = $1`)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(itineraryColumnList).
			AddRow(itineraryRow(10, 3, "Portugal")...).
			AddRow(itineraryRow(11, 8, "Shared trip")...))
	expectHydrate(mock, 10, sqlmock.NewRows([]string{"place"}), sqlmock.NewRows([]string{"id", "username", "email"}))
	expectHydrate(mock, 11, sqlmock.NewRows([]string{"place"}),
		sqlmock.NewRows([]string{"id", "username", "email"}).AddRow(int64(3), "traveller", "t@example.com"))

	list, err := s.ListItineraries(context.Background(), 3)
	if err != nil {
		t.Fatalf("ListItineraries error: %v", err)
	}
	if len(list) != 2 || list[1].OwnerID != 8 {
		t.Fatalf("unexpected itineraries %#v", list)
	}
}

func TestAddItineraryAttractionDuplicate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE itineraries SET updated_at = NOW()`)).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO itinerary_attractions`)).
		WithArgs(int64(10), "abc", sqlmock.AnyArg()).
		WillReturnError(uniqueViolation)
	mock.ExpectRollback()

	err := s.AddItineraryAttraction(context.Background(), 10, models.EnrichedPlace{ID: "abc"})
	if !errors.Is(err, ErrAttractionExists) {
		t.Fatalf("expected ErrAttractionExists, got %v", err)
	}
}

func TestAddItineraryAttractionMissingItinerary(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE itineraries SET updated_at = NOW()`)).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := s.AddItineraryAttraction(context.Background(), 99, models.EnrichedPlace{ID: "abc"})
	if !errors.Is(err, ErrItineraryNotFound) {
		t.Fatalf("expected ErrItineraryNotFound, got %v", err)
	}
}

func TestAddItineraryAttractionInTransaction(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE itineraries SET updated_at = NOW()`)).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO itinerary_attractions`)).
		WithArgs(int64(10), "abc", `{"id":"abc","name":null,"lat":1,"lon":2,"address":null,"kinds":null,"rating":null,"image":null,"description":null,"url":null,"phone":null,"opening_hours":null,"priorityMatch":0}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.AddItineraryAttraction(context.Background(), 10, models.EnrichedPlace{ID: "abc", Lat: 1, Lon: 2, PriorityMatch: 1})
	if err != nil {
		t.Fatalf("AddItineraryAttraction error: %v", err)
	}
}

func TestRemoveItineraryAttractionMissing(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM itinerary_attractions`)).
		WithArgs(int64(10), "zzz").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.RemoveItineraryAttraction(context.Background(), 10, "zzz"); !errors.Is(err, ErrAttractionNotFound) {
		t.Fatalf("expected ErrAttractionNotFound, got %v", err)
	}
}

func TestCollaborators(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO itinerary_collaborators`)).
		WithArgs(int64(10), int64(5)).
		WillReturnError(uniqueViolation)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM itinerary_collaborators`)).
		WithArgs(int64(10), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	if err := s.AddCollaborator(ctx, 10, 5); !errors.Is(err, ErrCollaboratorExists) {
		t.Fatalf("expected ErrCollaboratorExists, got %v", err)
	}
	if err := s.RemoveCollaborator(ctx, 10, 5); err != nil {
		t.Fatalf("RemoveCollaborator error: %v", err)
	}
}

func TestDeleteItineraryMissing(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM itineraries WHERE id = $1`)).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.DeleteItinerary(context.Background(), 10); !errors.Is(err, ErrItineraryNotFound) {
		t.Fatalf("expected ErrItineraryNotFound, got %v", err)
	}
}
