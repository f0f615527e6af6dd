package store

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrUserExists signals the username or email is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound indicates no user matched the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrAlreadySaved indicates the attraction is already bookmarked.
	ErrAlreadySaved = errors.New("already saved")
	// ErrSavedNotFound indicates the bookmark does not exist.
	ErrSavedNotFound = errors.New("saved attraction not found")
	// ErrFavoriteExists indicates the favorite name is already stored.
	ErrFavoriteExists = errors.New("favorite already exists")
	// ErrItineraryNotFound indicates no itinerary matched the lookup.
	ErrItineraryNotFound = errors.New("itinerary not found")
	// ErrAttractionExists indicates the itinerary already holds the attraction.
	ErrAttractionExists = errors.New("attraction already in itinerary")
	// ErrAttractionNotFound indicates the itinerary does not hold the attraction.
	ErrAttractionNotFound = errors.New("attraction not in itinerary")
	// ErrCollaboratorExists indicates the user already collaborates on the itinerary.
	ErrCollaboratorExists = errors.New("collaborator already added")
	// ErrCollaboratorNotFound indicates the user is not a collaborator.
	ErrCollaboratorNotFound = errors.New("collaborator not found")
	// ErrReviewExists indicates the user already reviewed the attraction.
	ErrReviewExists = errors.New("review already exists")
	// ErrReviewNotFound indicates no review matched the lookup.
	ErrReviewNotFound = errors.New("review not found")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}
