package ports

import (
	"context"

	"github.com/librisys/library-system/internal/core/domain"
)

// CreateReviewInput carries all data needed to append a review.
type CreateReviewInput struct {
	BookID  string
	UserID  string
	Rating  int
	Comment string
}

// ReviewService implements the append-only review ledger.
type ReviewService interface {
	CreateReview(ctx context.Context, input CreateReviewInput) (*domain.Review, error)
	ListBookReviews(ctx context.Context, bookID string) ([]*domain.Review, error)
	// DeleteReview removes a review; restricted to the admin role upstream.
	DeleteReview(ctx context.Context, id string) error
}
