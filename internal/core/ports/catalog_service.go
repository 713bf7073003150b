package ports

import (
	"context"

	"github.com/librisys/library-system/internal/core/domain"
)

// CreateBookInput carries all data needed to add a catalog entry.
type CreateBookInput struct {
	Title    string
	Author   string
	Category string
	AddedBy  string // user id of the librarian creating the entry
}

// UpdateBookInput carries a partial catalog update; nil fields are untouched.
type UpdateBookInput struct {
	ID       string
	Title    *string
	Author   *string
	Category *string
}

// ListBooksInput carries all parameters for the catalog list endpoint.
type ListBooksInput struct {
	Category      string
	Search        string
	AvailableOnly bool
	Page          int
	Limit         int
}

// ListBooksResult is returned by ListBooks.
type ListBooksResult struct {
	Items      []*domain.Book
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CatalogService defines use-case operations on the book catalog.
type CatalogService interface {
	CreateBook(ctx context.Context, input CreateBookInput) (*domain.Book, error)
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	ListBooks(ctx context.Context, input ListBooksInput) (*ListBooksResult, error)
	UpdateBook(ctx context.Context, input UpdateBookInput) (*domain.Book, error)
	// DeleteBook removes a catalog entry unless an active loan references it.
	DeleteBook(ctx context.Context, id string) error
}
