package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"easyexplore/internal/models"
)

const itineraryColumns = `id, owner_id, name, from_date, to_date, is_public, share_id, created_at, updated_at`

// CreateItinerary inserts an itinerary owned by ownerID.
func (s *Store) CreateItinerary(ctx context.Context, ownerID int64, in models.ItineraryInput) (*models.Itinerary, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO itineraries (owner_id, name, from_date, to_date, is_public, share_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+itineraryColumns,
		ownerID, in.Name, in.From.Time, in.To.Time, in.IsPublic, uuid.NewString())

	it, err := scanItinerary(row)
	if err != nil {
		return nil, fmt.Errorf("insert itinerary: %w", err)
	}
	it.Attractions = []models.EnrichedPlace{}
	it.Collaborators = []models.UserRef{}
	return it, nil
}

// GetItinerary loads an itinerary with its attractions and collaborators.
func (s *Store) GetItinerary(ctx context.Context, id int64) (*models.Itinerary, error) {
	return s.loadItinerary(ctx, `WHERE id = $1`, id)
}

// GetItineraryByShareID loads an itinerary through its public share id.
func (s *Store) GetItineraryByShareID(ctx context.Context, shareID string) (*models.Itinerary, error) {
	if _, err := uuid.Parse(shareID); err != nil {
		return nil, ErrItineraryNotFound
	}
	return s.loadItinerary(ctx, `WHERE share_id = $1`, shareID)
}

func (s *Store) loadItinerary(ctx context.Context, where string, arg any) (*models.Itinerary, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itineraryColumns+` FROM itineraries `+where, arg)
	it, err := scanItinerary(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItineraryNotFound
		}
		return nil, fmt.Errorf("select itinerary: %w", err)
	}
	if err := s.hydrate(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// ListItineraries returns itineraries owned by or shared with userID.
func (s *Store) ListItineraries(ctx context.Context, userID int64) ([]*models.Itinerary, error) {
	return s.listItineraries(ctx, `
		SELECT `+itineraryColumns+`
		FROM itineraries
		WHERE owner_id = $1
		   OR id IN (SELECT itinerary_id FROM itinerary_collaborators WHERE user_id = $1)
		ORDER BY from_date ASC, id ASC
	`, userID)
}

// ListPublicItineraries returns the public itineraries owned by ownerID.
func (s *Store) ListPublicItineraries(ctx context.Context, ownerID int64) ([]*models.Itinerary, error) {
	return s.listItineraries(ctx, `
		SELECT `+itineraryColumns+`
		FROM itineraries
		WHERE owner_id = $1 AND is_public
		ORDER BY from_date ASC, id ASC
	`, ownerID)
}

func (s *Store) listItineraries(ctx context.Context, query string, arg any) ([]*models.Itinerary, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("select itineraries: %w", err)
	}

	itineraries := []*models.Itinerary{}
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan itinerary: %w", err)
		}
		itineraries = append(itineraries, it)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate itineraries: %w", err)
	}
	rows.Close()

	for _, it := range itineraries {
		if err := s.hydrate(ctx, it); err != nil {
			return nil, err
		}
	}
	return itineraries, nil
}

// UpdateItinerary replaces the editable fields of an itinerary.
func (s *Store) UpdateItinerary(ctx context.Context, id int64, in models.ItineraryInput) (*models.Itinerary, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE itineraries
		SET name = $2, from_date = $3, to_date = $4, is_public = $5, updated_at = NOW()
		WHERE id = $1
	`, id, in.Name, in.From.Time, in.To.Time, in.IsPublic)
	if err != nil {
		return nil, fmt.Errorf("update itinerary: %w", err)
	}
	if err := expectAffected(res, ErrItineraryNotFound); err != nil {
		return nil, err
	}
	return s.GetItinerary(ctx, id)
}

// DeleteItinerary removes an itinerary and everything attached to it.
func (s *Store) DeleteItinerary(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM itineraries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete itinerary: %w", err)
	}
	return expectAffected(res, ErrItineraryNotFound)
}

// AddItineraryAttraction appends place to the itinerary. Touching the
// itinerary first locks its row, so concurrent appends get distinct positions.
func (s *Store) AddItineraryAttraction(ctx context.Context, itineraryID int64, place models.EnrichedPlace) error {
	place.PriorityMatch = 0
	payload, err := json.Marshal(place)
	if err != nil {
		return fmt.Errorf("marshal attraction: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `UPDATE itineraries SET updated_at = NOW() WHERE id = $1`, itineraryID)
	if err != nil {
		return fmt.Errorf("touch itinerary: %w", err)
	}
	if err := expectAffected(res, ErrItineraryNotFound); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO itinerary_attractions (itinerary_id, attraction_id, position, place)
		VALUES ($1, $2, (SELECT COALESCE(MAX(position) + 1, 0) FROM itinerary_attractions WHERE itinerary_id = $1), $3::jsonb)
	`, itineraryID, place.ID, string(payload)); err != nil {
		if isUniqueViolation(err) {
			return ErrAttractionExists
		}
		return fmt.Errorf("insert itinerary attraction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil
	return nil
}

// RemoveItineraryAttraction drops one attraction from the itinerary.
func (s *Store) RemoveItineraryAttraction(ctx context.Context, itineraryID int64, attractionID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM itinerary_attractions
		WHERE itinerary_id = $1 AND attraction_id = $2
	`, itineraryID, attractionID)
	if err != nil {
		return fmt.Errorf("delete itinerary attraction: %w", err)
	}
	return expectAffected(res, ErrAttractionNotFound)
}

// AddCollaborator grants userID edit access to the itinerary.
func (s *Store) AddCollaborator(ctx context.Context, itineraryID, userID int64) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO itinerary_collaborators (itinerary_id, user_id)
		VALUES ($1, $2)
	`, itineraryID, userID); err != nil {
		if isUniqueViolation(err) {
			return ErrCollaboratorExists
		}
		return fmt.Errorf("insert collaborator: %w", err)
	}
	return nil
}

// RemoveCollaborator revokes userID's access to the itinerary.
func (s *Store) RemoveCollaborator(ctx context.Context, itineraryID, userID int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM itinerary_collaborators
		WHERE itinerary_id = $1 AND user_id = $2
	`, itineraryID, userID)
	if err != nil {
		return fmt.Errorf("delete collaborator: %w", err)
	}
	return expectAffected(res, ErrCollaboratorNotFound)
}

func (s *Store) hydrate(ctx context.Context, it *models.Itinerary) error {
	attractions, err := s.itineraryAttractions(ctx, it.ID)
	if err != nil {
		return err
	}
	collaborators, err := s.itineraryCollaborators(ctx, it.ID)
	if err != nil {
		return err
	}
	it.Attractions = attractions
	it.Collaborators = collaborators
	return nil
}

func (s *Store) itineraryAttractions(ctx context.Context, itineraryID int64) ([]models.EnrichedPlace, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT place
		FROM itinerary_attractions
		WHERE itinerary_id = $1
		ORDER BY position ASC
	`, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("select itinerary attractions: %w", err)
	}
	defer rows.Close()

	places := []models.EnrichedPlace{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan itinerary attraction: %w", err)
		}
		var p models.EnrichedPlace
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode itinerary attraction: %w", err)
		}
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate itinerary attractions: %w", err)
	}
	return places, nil
}

func (s *Store) itineraryCollaborators(ctx context.Context, itineraryID int64) ([]models.UserRef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.username, u.email
		FROM itinerary_collaborators c
		JOIN users u ON u.id = c.user_id
		WHERE c.itinerary_id = $1
		ORDER BY c.added_at ASC, u.id ASC
	`, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("select collaborators: %w", err)
	}
	defer rows.Close()

	refs := []models.UserRef{}
	for rows.Next() {
		var ref models.UserRef
		if err := rows.Scan(&ref.ID, &ref.UserName, &ref.Email); err != nil {
			return nil, fmt.Errorf("scan collaborator: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collaborators: %w", err)
	}
	return refs, nil
}

func scanItinerary(row rowScanner) (*models.Itinerary, error) {
	var (
		it       models.Itinerary
		from, to time.Time
	)
	if err := row.Scan(&it.ID, &it.OwnerID, &it.Name, &from, &to, &it.IsPublic, &it.ShareID, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	it.From = models.NewDate(from)
	it.To = models.NewDate(to)
	return &it, nil
}

func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
