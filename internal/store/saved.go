package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"easyexplore/internal/models"
)

// SaveAttraction bookmarks place for the user.
func (s *Store) SaveAttraction(ctx context.Context, userID int64, place models.EnrichedPlace) (*models.SavedAttraction, error) {
	kinds := place.Kinds
	if kinds == nil {
		kinds = []string{}
	}

	saved := &models.SavedAttraction{EnrichedPlace: place}
	saved.Kinds = kinds
	saved.PriorityMatch = 0

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO saved_attractions (user_id, attraction_id, name, lat, lon, address, kinds, rating, image, description, url, phone, opening_hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING saved_at
	`,
		userID, place.ID, nullString(place.Name), place.Lat, place.Lon, nullString(place.Address),
		pq.Array(kinds), nullFloat(place.Rating), nullString(place.Image), nullString(place.Description),
		nullString(place.URL), nullString(place.Phone), nullString(place.OpeningHours),
	).Scan(&saved.SavedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadySaved
		}
		return nil, fmt.Errorf("insert saved attraction: %w", err)
	}
	return saved, nil
}

// ListSavedAttractions returns the user's bookmarks, newest first.
func (s *Store) ListSavedAttractions(ctx context.Context, userID int64) ([]*models.SavedAttraction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT attraction_id, name, lat, lon, address, kinds, rating, image, description, url, phone, opening_hours, saved_at
		FROM saved_attractions
		WHERE user_id = $1
		ORDER BY saved_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select saved attractions: %w", err)
	}
	defer rows.Close()

	saved := []*models.SavedAttraction{}
	for rows.Next() {
		var (
			a                                                     models.SavedAttraction
			name, address, image, description, url, phone, hours sql.NullString
			rating                                                sql.NullFloat64
			kinds                                                 []string
		)
		if err := rows.Scan(&a.ID, &name, &a.Lat, &a.Lon, &address, pq.Array(&kinds), &rating,
			&image, &description, &url, &phone, &hours, &a.SavedAt); err != nil {
			return nil, fmt.Errorf("scan saved attraction: %w", err)
		}
		if kinds == nil {
			kinds = []string{}
		}
		a.Name = stringPtr(name)
		a.Address = stringPtr(address)
		a.Kinds = kinds
		a.Rating = floatPtr(rating)
		a.Image = stringPtr(image)
		a.Description = stringPtr(description)
		a.URL = stringPtr(url)
		a.Phone = stringPtr(phone)
		a.OpeningHours = stringPtr(hours)
		saved = append(saved, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved attractions: %w", err)
	}
	return saved, nil
}

// DeleteSavedAttraction removes one bookmark.
func (s *Store) DeleteSavedAttraction(ctx context.Context, userID int64, attractionID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM saved_attractions
		WHERE user_id = $1 AND attraction_id = $2
	`, userID, attractionID)
	if err != nil {
		return fmt.Errorf("delete saved attraction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete saved attraction rows: %w", err)
	}
	if n == 0 {
		return ErrSavedNotFound
	}
	return nil
}

// AddFavorite stores a favorite place name for the user.
func (s *Store) AddFavorite(ctx context.Context, userID int64, name string) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO favorites (user_id, name)
		VALUES ($1, $2)
	`, userID, name); err != nil {
		if isUniqueViolation(err) {
			return ErrFavoriteExists
		}
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

// ListFavorites returns the user's favorite names in insertion order.
func (s *Store) ListFavorites(ctx context.Context, userID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at ASC, name ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select favorites: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}
	return names, nil
}
