package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"easyexplore/internal/models"
)

const userColumns = `id, username, email, bio, profile_picture, current_city, current_country, is_public, created_at, updated_at`

// CreateUser inserts a new account and returns it.
func (s *Store) CreateUser(ctx context.Context, userName, email string, passwordHash []byte) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		strings.TrimSpace(userName), strings.ToLower(strings.TrimSpace(email)), passwordHash)

	user, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	user.VisitedCities = []models.VisitedCity{}
	return user, nil
}

// CredentialsByEmail returns the user and password hash for a login attempt.
func (s *Store) CredentialsByEmail(ctx context.Context, email string) (*models.User, []byte, error) {
	var hash []byte
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`, password_hash
		FROM users
		WHERE email = $1
	`, strings.ToLower(strings.TrimSpace(email))).Scan(
		&u.ID, &u.UserName, &u.Email, &u.Bio, &u.ProfilePicture,
		&u.CurrentLocation.City, &u.CurrentLocation.Country, &u.IsPublic,
		&u.CreatedAt, &u.UpdatedAt, &hash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("lookup user by email: %w", err)
	}
	return &u, hash, nil
}

// UserByID loads a user with their visited cities.
func (s *Store) UserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.loadUser(ctx, `WHERE id = $1`, id)
}

// UserByUsername loads a user by their public handle.
func (s *Store) UserByUsername(ctx context.Context, userName string) (*models.User, error) {
	return s.loadUser(ctx, `WHERE username = $1`, strings.TrimSpace(userName))
}

// UserByEmail loads a user by email address.
func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.loadUser(ctx, `WHERE email = $1`, strings.ToLower(strings.TrimSpace(email)))
}

func (s *Store) loadUser(ctx context.Context, where string, arg any) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users `+where, arg)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}

	cities, err := s.visitedCities(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.VisitedCities = cities
	return user, nil
}

func (s *Store) visitedCities(ctx context.Context, userID int64) ([]models.VisitedCity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT country_code, country_name, city
		FROM visited_cities
		WHERE user_id = $1
		ORDER BY position ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select visited cities: %w", err)
	}
	defer rows.Close()

	cities := []models.VisitedCity{}
	for rows.Next() {
		var c models.VisitedCity
		if err := rows.Scan(&c.CountryCode, &c.CountryName, &c.City); err != nil {
			return nil, fmt.Errorf("scan visited city: %w", err)
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visited cities: %w", err)
	}
	return cities, nil
}

// UpdateProfile applies the non-nil fields of update. A non-nil
// VisitedCities replaces the whole list.
func (s *Store) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (*models.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	var city, country sql.NullString
	if update.CurrentLocation != nil {
		city = sql.NullString{String: update.CurrentLocation.City, Valid: true}
		country = sql.NullString{String: update.CurrentLocation.Country, Valid: true}
	}
	var isPublic sql.NullBool
	if update.IsPublic != nil {
		isPublic = sql.NullBool{Bool: *update.IsPublic, Valid: true}
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE users
		SET bio = COALESCE($2, bio),
		    profile_picture = COALESCE($3, profile_picture),
		    current_city = COALESCE($4, current_city),
		    current_country = COALESCE($5, current_country),
		    is_public = COALESCE($6, is_public),
		    updated_at = NOW()
		WHERE id = $1
	`, userID, nullString(update.Bio), nullString(update.ProfilePicture), city, country, isPublic)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrUserNotFound
	}

	if update.VisitedCities != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM visited_cities WHERE user_id = $1`, userID); err != nil {
			return nil, fmt.Errorf("clear visited cities: %w", err)
		}
		for i, c := range update.VisitedCities {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO visited_cities (user_id, position, country_code, country_name, city)
				VALUES ($1, $2, $3, $4, $5)
			`, userID, i, c.CountryCode, c.CountryName, c.City); err != nil {
				return nil, fmt.Errorf("insert visited city: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return s.UserByID(ctx, userID)
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(
		&u.ID, &u.UserName, &u.Email, &u.Bio, &u.ProfilePicture,
		&u.CurrentLocation.City, &u.CurrentLocation.Country, &u.IsPublic,
		&u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
