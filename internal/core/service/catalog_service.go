package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
)

const maxListLimit = 100

// CatalogService manages catalog entries. Write operations are gated to the
// librarian role at the transport boundary.
type CatalogService struct {
	books  ports.BookRepository
	loans  ports.LoanRepository
	logger zerolog.Logger
}

func NewCatalogService(books ports.BookRepository, loans ports.LoanRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{books: books, loans: loans, logger: logger}
}

func (s *CatalogService) CreateBook(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error) {
	book := &domain.Book{
		Title:     input.Title,
		Author:    input.Author,
		Category:  input.Category,
		AddedBy:   input.AddedBy,
		Available: true,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.books.Create(ctx, book)
	if err != nil {
		s.logger.Error().Err(err).Str("title", input.Title).Msg("failed to create book")
		return nil, err
	}

	s.logger.Info().Str("book_id", created.ID).Str("title", created.Title).Msg("book added")
	return created, nil
}

func (s *CatalogService) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	return s.books.FindByID(ctx, id)
}

func (s *CatalogService) ListBooks(ctx context.Context, input ports.ListBooksInput) (*ports.ListBooksResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	items, total, err := s.books.List(ctx, ports.ListBooksFilter{
		Category:      input.Category,
		Search:        input.Search,
		AvailableOnly: input.AvailableOnly,
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return &ports.ListBooksResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *CatalogService) UpdateBook(ctx context.Context, input ports.UpdateBookInput) (*domain.Book, error) {
	updated, err := s.books.Update(ctx, input.ID, ports.BookUpdate{
		Title:    input.Title,
		Author:   input.Author,
		Category: input.Category,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("book_id", input.ID).Msg("book updated")
	return updated, nil
}

// DeleteBook removes a catalog entry. Deletion is rejected while an ACTIVE
// loan references the book (referential guard).
func (s *CatalogService) DeleteBook(ctx context.Context, id string) error {
	onLoan, err := s.loans.HasActiveForBook(ctx, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if onLoan {
		return domain.ErrBookOnLoan
	}

	if err := s.books.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("book_id", id).Msg("book deleted")
	return nil
}
