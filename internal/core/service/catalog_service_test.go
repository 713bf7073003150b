package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
)

func catalogFixture() (*stubBookRepo, *stubLoanRepo, *CatalogService) {
	books := newStubBookRepo()
	loans := newStubLoanRepo()
	svc := NewCatalogService(books, loans, discardLogger)
	return books, loans, svc
}

func TestCatalogService_CreateBook_StartsAvailable(t *testing.T) {
	_, _, svc := catalogFixture()

	book, err := svc.CreateBook(context.Background(), ports.CreateBookInput{
		Title:    "Dune",
		Author:   "Frank Herbert",
		Category: "scifi",
		AddedBy:  "staff-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !book.Available {
		t.Error("a new book must start available")
	}
	if book.AddedBy != "staff-1" {
		t.Errorf("expected added_by staff-1, got %s", book.AddedBy)
	}
	if book.CreatedAt.IsZero() {
		t.Error("CreatedAt must not be zero")
	}
}

func TestCatalogService_GetBook_NotFound(t *testing.T) {
	_, _, svc := catalogFixture()

	_, err := svc.GetBook(context.Background(), "missing")
	if !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestCatalogService_ListBooks_Filters(t *testing.T) {
	books, _, svc := catalogFixture()
	books.addBook("Dune", "Frank Herbert", "scifi", true)
	books.addBook("Emma", "Jane Austen", "classic", false)

	out, err := svc.ListBooks(context.Background(), ports.ListBooksInput{Category: "SCIFI"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Total != 1 {
		t.Fatalf("category filter must be case-insensitive, got %d matches", out.Total)
	}
	if out.Items[0].Title != "Dune" {
		t.Errorf("expected Dune, got %s", out.Items[0].Title)
	}
}

func TestCatalogService_ListBooks_CapsLimit(t *testing.T) {
	_, _, svc := catalogFixture()

	out, err := svc.ListBooks(context.Background(), ports.ListBooksInput{Limit: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Limit != maxListLimit {
		t.Errorf("expected limit capped at %d, got %d", maxListLimit, out.Limit)
	}
}

func TestCatalogService_ListBooks_DefaultsPageAndLimit(t *testing.T) {
	_, _, svc := catalogFixture()

	out, err := svc.ListBooks(context.Background(), ports.ListBooksInput{Page: -3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Page != 1 {
		t.Errorf("expected page 1, got %d", out.Page)
	}
	if out.Limit != 20 {
		t.Errorf("expected default limit 20, got %d", out.Limit)
	}
}

func TestCatalogService_UpdateBook_PartialUpdate(t *testing.T) {
	books, _, svc := catalogFixture()
	book := books.addBook("Dune", "Frank Herbert", "scifi", true)

	title := "Dune Messiah"
	updated, err := svc.UpdateBook(context.Background(), ports.UpdateBookInput{
		ID:    book.ID,
		Title: &title,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Dune Messiah" {
		t.Errorf("expected updated title, got %s", updated.Title)
	}
	if updated.Author != "Frank Herbert" {
		t.Errorf("untouched field must survive, got %s", updated.Author)
	}
}

func TestCatalogService_DeleteBook_Success(t *testing.T) {
	books, _, svc := catalogFixture()
	book := books.addBook("Dune", "Frank Herbert", "scifi", true)

	if err := svc.DeleteBook(context.Background(), book.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := books.books[book.ID]; ok {
		t.Error("book must be removed")
	}
}

func TestCatalogService_DeleteBook_BlockedWhileOnLoan(t *testing.T) {
	books, loans, svc := catalogFixture()
	book := books.addBook("Dune", "Frank Herbert", "scifi", false)
	loans.addLoan(book.ID, "user-1", time.Now().UTC().Add(24*time.Hour), domain.LoanActive)

	err := svc.DeleteBook(context.Background(), book.ID)
	if !errors.Is(err, domain.ErrBookOnLoan) {
		t.Fatalf("expected ErrBookOnLoan, got %v", err)
	}
	if _, ok := books.books[book.ID]; !ok {
		t.Error("book must survive a blocked delete")
	}
}

func TestCatalogService_DeleteBook_ReturnedLoanDoesNotBlock(t *testing.T) {
	books, loans, svc := catalogFixture()
	book := books.addBook("Dune", "Frank Herbert", "scifi", true)
	loans.addLoan(book.ID, "user-1", time.Now().UTC(), domain.LoanReturned)

	if err := svc.DeleteBook(context.Background(), book.ID); err != nil {
		t.Fatalf("a returned loan must not block deletion: %v", err)
	}
}
