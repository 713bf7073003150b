package ports

import (
	"context"

	"github.com/librisys/library-system/internal/core/domain"
)

// ListBooksFilter carries all query parameters for listing catalog entries.
type ListBooksFilter struct {
	Category      string // optional: case-insensitive category match
	Search        string // optional: partial match on title or author
	AvailableOnly bool
	Page          int // 1-based
	Limit         int // max rows per page (capped at 100 by service)
}

// BookUpdate holds the mutable catalog fields; nil means "leave unchanged".
type BookUpdate struct {
	Title    *string
	Author   *string
	Category *string
}

// BookRepository defines persistence operations for catalog entries.
type BookRepository interface {
	Create(ctx context.Context, b *domain.Book) (*domain.Book, error)
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	// List returns a page of books matching filter and the total count.
	List(ctx context.Context, filter ListBooksFilter) ([]*domain.Book, int64, error)
	Update(ctx context.Context, id string, upd BookUpdate) (*domain.Book, error)
	Delete(ctx context.Context, id string) error

	// MarkUnavailable atomically flips Available from true to false. It is the
	// single gate both the lending and reservation paths rely on: when the flag
	// is already false the update matches nothing and ErrBookUnavailable is
	// returned, so two interleaved borrows admit exactly one winner.
	MarkUnavailable(ctx context.Context, id string) error
	// MarkAvailable sets Available to true (loan return path).
	MarkAvailable(ctx context.Context, id string) error
}
