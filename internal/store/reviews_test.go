package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

var reviewColumnList = []string{"id", "attraction_id", "rating", "comment", "created_at", "updated_at", "id", "username"}

func TestCreateReview(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO reviews`)).
		WithArgs("abc", int64(3), 5, "Breathtaking").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(21)))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE r.id = $1`)).
		WithArgs(int64(21)).
		WillReturnRows(sqlmock.NewRows(reviewColumnList).
			AddRow(int64(21), "abc", 5, "Breathtaking", fixedTime, fixedTime, int64(3), "traveller"))

	review, err := s.CreateReview(context.Background(), 3, "abc", 5, "Breathtaking")
	if err != nil {
		t.Fatalf("CreateReview error: %v", err)
	}
	if review.ID != 21 || review.User.UserName != "traveller" || review.Rating != 5 {
		t.Fatalf("unexpected review %#v", review)
	}
}

func TestCreateReviewDuplicate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO reviews`)).
		WillReturnError(uniqueViolation)

	if _, err := s.CreateReview(context.Background(), 3, "abc", 4, ""); !errors.Is(err, ErrReviewExists) {
		t.Fatalf("expected ErrReviewExists, got %v", err)
	}
}

func TestListReviewsByUserPaginates(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM reviews WHERE user_id = $1`)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta(`LIMIT $2 OFFSET $3`)).
		WithArgs(int64(3), 5, 5).
		WillReturnRows(sqlmock.NewRows(reviewColumnList).
			AddRow(int64(8), "abc", 4, "Nice", fixedTime, fixedTime, int64(3), "traveller"))

	reviews, total, err := s.ListReviewsByUser(context.Background(), 3, 5, 5)
	if err != nil {
		t.Fatalf("ListReviewsByUser error: %v", err)
	}
	if total != 12 || len(reviews) != 1 {
		t.Fatalf("unexpected page total=%d len=%d", total, len(reviews))
	}
}

func TestListReviewsByAttractionEmpty(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE r.attraction_id = $1`)).
		WithArgs("abc").
		WillReturnRows(sqlmock.NewRows(reviewColumnList))

	reviews, err := s.ListReviewsByAttraction(context.Background(), "abc")
	if err != nil {
		t.Fatalf("ListReviewsByAttraction error: %v", err)
	}
	if reviews == nil || len(reviews) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", reviews)
	}
}

func TestUpdateAndDeleteReviewMissing(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE reviews`)).
		WithArgs(int64(99), 3, "meh").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM reviews WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := context.Background()
	if _, err := s.UpdateReview(ctx, 99, 3, "meh"); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound, got %v", err)
	}
	if err := s.DeleteReview(ctx, 99); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound, got %v", err)
	}
}
