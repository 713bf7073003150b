package ports

import (
	"context"

	"github.com/librisys/library-system/internal/core/domain"
)

// ReviewRepository defines persistence operations for the append-only
// review ledger. There is deliberately no Update.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) (*domain.Review, error)
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	ListByBook(ctx context.Context, bookID string) ([]*domain.Review, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Review, error)
	Delete(ctx context.Context, id string) error
}
