package ports

import (
	"context"
	"time"

	"github.com/librisys/library-system/internal/core/domain"
)

// LoanRepository defines persistence operations for loans.
type LoanRepository interface {
	Create(ctx context.Context, l *domain.Loan) (*domain.Loan, error)
	FindByID(ctx context.Context, id string) (*domain.Loan, error)
	// ListByUser returns a user's loans, newest first. When activeOnly is set
	// only ACTIVE loans are returned.
	ListByUser(ctx context.Context, userID string, activeOnly bool) ([]*domain.Loan, error)
	// ListAll is the unscoped variant used by admin reads.
	ListAll(ctx context.Context, activeOnly bool) ([]*domain.Loan, error)

	// MarkReturned atomically moves a loan from ACTIVE to RETURNED, recording
	// the return time and fine. The update is conditional on the current status
	// being ACTIVE; a second caller loses the race and gets
	// ErrLoanAlreadyReturned.
	MarkReturned(ctx context.Context, id string, returnedAt time.Time, fineCents int64) (*domain.Loan, error)

	// HasActiveForBook reports whether any ACTIVE loan references the book
	// (referential guard for catalog deletes).
	HasActiveForBook(ctx context.Context, bookID string) (bool, error)

	// ListOverdue returns ACTIVE loans whose due date is before asOf.
	ListOverdue(ctx context.Context, asOf time.Time) ([]*domain.Loan, error)
}
