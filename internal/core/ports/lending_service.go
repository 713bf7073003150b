package ports

import (
	"context"
	"time"

	"github.com/librisys/library-system/internal/core/domain"
)

// CreateLoanInput carries all data needed to issue a loan.
type CreateLoanInput struct {
	BookID  string
	UserID  string // borrower, taken from auth claims
	DueDate time.Time
}

// ReturnLoanInput identifies the loan being returned and the acting user.
type ReturnLoanInput struct {
	LoanID    string
	ActorID   string
	ActorRole string
}

// ListLoansInput scopes a loan listing. Readers see their own loans; admin
// and librarian roles see everything.
type ListLoansInput struct {
	ActorID    string
	ActorRole  string
	ActiveOnly bool
}

// LendingService implements the loan lifecycle: issue, list, return.
type LendingService interface {
	// CreateLoan issues a loan against an available book, marking the book
	// unavailable and appending an activity-log line to the borrower's profile.
	CreateLoan(ctx context.Context, input CreateLoanInput) (*domain.Loan, error)
	// ReturnLoan closes an ACTIVE loan exactly once, computes the fine and
	// restores the book's availability.
	ReturnLoan(ctx context.Context, input ReturnLoanInput) (*domain.Loan, error)
	ListLoans(ctx context.Context, input ListLoansInput) ([]*domain.Loan, error)
}
