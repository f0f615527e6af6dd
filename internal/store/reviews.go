package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"easyexplore/internal/models"
)

const reviewSelect = `
	SELECT r.id, r.attraction_id, r.rating, r.comment, r.created_at, r.updated_at, u.id, u.username
	FROM reviews r
	JOIN users u ON u.id = r.user_id`

// CreateReview stores a user's review of an attraction.
func (s *Store) CreateReview(ctx context.Context, userID int64, attractionID string, rating int, comment string) (*models.Review, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO reviews (attraction_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, attractionID, userID, rating, comment).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrReviewExists
		}
		return nil, fmt.Errorf("insert review: %w", err)
	}
	return s.GetReview(ctx, id)
}

// GetReview loads a single review with its author.
func (s *Store) GetReview(ctx context.Context, id int64) (*models.Review, error) {
	review, err := scanReview(s.db.QueryRowContext(ctx, reviewSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("select review: %w", err)
	}
	return review, nil
}

// ListReviewsByAttraction returns an attraction's reviews, newest first.
func (s *Store) ListReviewsByAttraction(ctx context.Context, attractionID string) ([]*models.Review, error) {
	return s.queryReviews(ctx, reviewSelect+`
		WHERE r.attraction_id = $1
		ORDER BY r.created_at DESC, r.id DESC
	`, attractionID)
}

// ListReviewsByUser returns one page of a user's reviews and the total count.
func (s *Store) ListReviewsByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.Review, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	reviews, err := s.queryReviews(ctx, reviewSelect+`
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// UpdateReview changes the rating and comment of a review.
func (s *Store) UpdateReview(ctx context.Context, id int64, rating int, comment string) (*models.Review, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE reviews
		SET rating = $2, comment = $3, updated_at = NOW()
		WHERE id = $1
	`, id, rating, comment)
	if err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	if err := expectAffected(res, ErrReviewNotFound); err != nil {
		return nil, err
	}
	return s.GetReview(ctx, id)
}

// DeleteReview removes a review.
func (s *Store) DeleteReview(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return expectAffected(res, ErrReviewNotFound)
}

func (s *Store) queryReviews(ctx context.Context, query string, args ...any) ([]*models.Review, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*models.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return reviews, nil
}

func scanReview(row rowScanner) (*models.Review, error) {
	var r models.Review
	if err := row.Scan(&r.ID, &r.AttractionID, &r.Rating, &r.Comment, &r.CreatedAt, &r.UpdatedAt, &r.User.ID, &r.User.UserName); err != nil {
		return nil, err
	}
	return &r, nil
}
