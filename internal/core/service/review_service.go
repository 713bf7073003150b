package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
)

// ReviewService implements the append-only review ledger.
type ReviewService struct {
	reviews ports.ReviewRepository
	books   ports.BookRepository
	logger  zerolog.Logger
}

func NewReviewService(reviews ports.ReviewRepository, books ports.BookRepository, logger zerolog.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, books: books, logger: logger}
}

func (s *ReviewService) CreateReview(ctx context.Context, input ports.CreateReviewInput) (*domain.Review, error) {
	if !domain.ValidRating(input.Rating) {
		return nil, domain.ErrRatingOutOfRange
	}
	if _, err := s.books.FindByID(ctx, input.BookID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		BookID:    input.BookID,
		UserID:    input.UserID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.reviews.Create(ctx, review)
	if err != nil {
		s.logger.Error().Err(err).Str("book_id", input.BookID).Msg("failed to create review")
		return nil, err
	}

	s.logger.Info().Str("review_id", created.ID).Str("book_id", input.BookID).Int("rating", input.Rating).Msg("review added")
	return created, nil
}

func (s *ReviewService) ListBookReviews(ctx context.Context, bookID string) ([]*domain.Review, error) {
	return s.reviews.ListByBook(ctx, bookID)
}

func (s *ReviewService) DeleteReview(ctx context.Context, id string) error {
	if _, err := s.reviews.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("review_id", id).Msg("review deleted")
	return nil
}
