package reviews

import (
	"context"
	"strings"

	"easyexplore/internal/app"
	"easyexplore/internal/models"
)

const (
	// DefaultPageSize is used when a listing does not ask for a limit.
	DefaultPageSize = 10
	// MaxPageSize caps the listing limit.
	MaxPageSize = 50
	// MaxPage is the deepest page a listing may ask for.
	MaxPage = 10000
)

// Store describes the persistence operations required by the review service.
type Store interface {
	CreateReview(ctx context.Context, userID int64, attractionID string, rating int, comment string) (*models.Review, error)
	GetReview(ctx context.Context, id int64) (*models.Review, error)
	ListReviewsByAttraction(ctx context.Context, attractionID string) ([]*models.Review, error)
	ListReviewsByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.Review, int, error)
	UpdateReview(ctx context.Context, id int64, rating int, comment string) (*models.Review, error)
	DeleteReview(ctx context.Context, id int64) error
	UserByUsername(ctx context.Context, userName string) (*models.User, error)
}

// Service exposes attraction reviews.
type Service interface {
	Create(ctx context.Context, userID int64, attractionID string, rating int, comment string) (*models.Review, error)
	ForAttraction(ctx context.Context, attractionID string) ([]*models.Review, error)
	Update(ctx context.Context, userID, id int64, rating int, comment string) (*models.Review, error)
	Delete(ctx context.Context, userID, id int64) error
	ByUser(ctx context.Context, userName string, page, limit int) (*models.ReviewPage, error)
	Mine(ctx context.Context, userID int64, page, limit int) (*models.ReviewPage, error)
}

type service struct {
	store Store
}

// New wires a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, userID int64, attractionID string, rating int, comment string) (*models.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	attractionID = strings.TrimSpace(attractionID)
	if attractionID == "" {
		return nil, app.Invalid("attractionId is required")
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	return s.store.CreateReview(ctx, userID, attractionID, rating, strings.TrimSpace(comment))
}

func (s *service) ForAttraction(ctx context.Context, attractionID string) ([]*models.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListReviewsByAttraction(ctx, attractionID)
}

func (s *service) Update(ctx context.Context, userID, id int64, rating int, comment string) (*models.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	if err := s.authorise(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.store.UpdateReview(ctx, id, rating, strings.TrimSpace(comment))
}

func (s *service) Delete(ctx context.Context, userID, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.authorise(ctx, userID, id); err != nil {
		return err
	}
	return s.store.DeleteReview(ctx, id)
}

func (s *service) ByUser(ctx context.Context, userName string, page, limit int) (*models.ReviewPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user, err := s.store.UserByUsername(ctx, userName)
	if err != nil {
		return nil, err
	}
	return s.page(ctx, user.ID, page, limit)
}

func (s *service) Mine(ctx context.Context, userID int64, page, limit int) (*models.ReviewPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.page(ctx, userID, page, limit)
}

func (s *service) page(ctx context.Context, userID int64, page, limit int) (*models.ReviewPage, error) {
	switch {
	case page < 1:
		page = 1
	case page > MaxPage:
		return nil, app.Invalid("page must not exceed %d", MaxPage)
	}
	switch {
	case limit < 1:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}

	reviews, total, err := s.store.ListReviewsByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return &models.ReviewPage{
		Reviews:    reviews,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

func (s *service) authorise(ctx context.Context, userID, id int64) error {
	review, err := s.store.GetReview(ctx, id)
	if err != nil {
		return err
	}
	if review.User.ID != userID {
		return app.ErrForbidden
	}
	return nil
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return app.Invalid("rating must be between 1 and 5")
	}
	return nil
}
