package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/librisys/library-system/internal/api/metrics"
	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
)

// LendingService implements the loan lifecycle. The book availability flag is
// the shared resource: issuing a loan claims it through a single conditional
// update, so the check and the flip cannot interleave with another borrower.
type LendingService struct {
	loans    ports.LoanRepository
	books    ports.BookRepository
	profiles ports.ProfileRepository
	logger   zerolog.Logger
}

func NewLendingService(
	loans ports.LoanRepository,
	books ports.BookRepository,
	profiles ports.ProfileRepository,
	logger zerolog.Logger,
) *LendingService {
	return &LendingService{loans: loans, books: books, profiles: profiles, logger: logger}
}

// CreateLoan issues a loan of an available book to the borrower. On success
// the book is unavailable, the loan is ACTIVE, and an activity line is
// appended to the borrower's profile (best-effort).
func (s *LendingService) CreateLoan(ctx context.Context, input ports.CreateLoanInput) (*domain.Loan, error) {
	book, err := s.books.FindByID(ctx, input.BookID)
	if err != nil {
		return nil, err
	}

	// Claim availability first; the conditional update admits exactly one
	// winner when two borrows interleave.
	if err := s.books.MarkUnavailable(ctx, book.ID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	loan := &domain.Loan{
		BookID:   book.ID,
		UserID:   input.UserID,
		LoanedAt: now,
		DueDate:  input.DueDate,
		Status:   domain.LoanActive,
	}

	created, err := s.loans.Create(ctx, loan)
	if err != nil {
		// Release the claim so the book is not stranded unavailable.
		if relErr := s.books.MarkAvailable(ctx, book.ID); relErr != nil {
			s.logger.Error().Err(relErr).Str("book_id", book.ID).Msg("failed to release availability after loan insert failure")
		}
		s.logger.Error().Err(err).Str("book_id", book.ID).Msg("failed to create loan")
		return nil, err
	}

	s.appendActivity(ctx, input.UserID, now, fmt.Sprintf("Borrowed %q, due %s", book.Title, input.DueDate.Format("2006-01-02")))
	metrics.LoansCreatedTotal.Inc()

	s.logger.Info().
		Str("loan_id", created.ID).
		Str("book_id", book.ID).
		Str("user_id", input.UserID).
		Time("due_date", input.DueDate).
		Msg("loan issued")

	return created, nil
}

// ReturnLoan closes a loan exactly once. The status move ACTIVE->RETURNED is
// a compare-and-set in the repository; the losing caller of two simultaneous
// returns gets ErrLoanAlreadyReturned and no state changes.
func (s *LendingService) ReturnLoan(ctx context.Context, input ports.ReturnLoanInput) (*domain.Loan, error) {
	loan, err := s.loans.FindByID(ctx, input.LoanID)
	if err != nil {
		return nil, err
	}

	// Readers may only return their own loans; staff may return any.
	if input.ActorRole == domain.RoleReader && loan.UserID != input.ActorID {
		return nil, domain.ErrForbidden
	}
	if loan.Status == domain.LoanReturned {
		return nil, domain.ErrLoanAlreadyReturned
	}

	now := time.Now().UTC()
	fine := domain.FineFor(loan.DueDate, now)

	returned, err := s.loans.MarkReturned(ctx, loan.ID, now, fine)
	if err != nil {
		return nil, err
	}

	if err := s.books.MarkAvailable(ctx, loan.BookID); err != nil {
		s.logger.Error().Err(err).Str("book_id", loan.BookID).Msg("failed to restore availability on return")
	}

	metrics.LoansReturnedTotal.Inc()
	if fine > 0 {
		metrics.FinesAssessedTotal.Inc()
	}

	s.logger.Info().
		Str("loan_id", returned.ID).
		Str("book_id", loan.BookID).
		Str("fine", returned.Fine()).
		Msg("loan returned")

	return returned, nil
}

func (s *LendingService) ListLoans(ctx context.Context, input ports.ListLoansInput) ([]*domain.Loan, error) {
	if input.ActorRole == domain.RoleAdmin || input.ActorRole == domain.RoleLibrarian {
		return s.loans.ListAll(ctx, input.ActiveOnly)
	}
	return s.loans.ListByUser(ctx, input.ActorID, input.ActiveOnly)
}

// appendActivity records a profile activity line; failures are logged and do
// not fail the loan.
func (s *LendingService) appendActivity(ctx context.Context, userID string, at time.Time, note string) {
	err := s.profiles.AppendActivity(ctx, userID, domain.ActivityEntry{At: at, Note: note})
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to append profile activity")
	}
}
