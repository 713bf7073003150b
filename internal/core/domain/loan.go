package domain

import (
	"errors"
	"fmt"
	"time"
)

// LoanStatus represents the lifecycle state of a loan.
type LoanStatus string

const (
	LoanActive   LoanStatus = "ACTIVE"
	LoanReturned LoanStatus = "RETURNED"
)

var ErrLoanNotFound = errors.New("loan not found")
var ErrLoanAlreadyReturned = errors.New("loan already returned")

// FinePerDayCents is the flat penalty applied per whole day a loan is
// overdue. No grace period, no compounding.
const FinePerDayCents int64 = 100

// Loan links one Book to one borrowing User for a bounded period.
// A loan is mutated exactly once, on return, and is immutable afterward.
type Loan struct {
	ID         string     `json:"id" bson:"_id,omitempty"`
	BookID     string     `json:"book_id" bson:"book_id"`
	UserID     string     `json:"user_id" bson:"user_id"`
	LoanedAt   time.Time  `json:"loaned_at" bson:"loaned_at"`
	DueDate    time.Time  `json:"due_date" bson:"due_date"`
	ReturnedAt *time.Time `json:"returned_at,omitempty" bson:"returned_at,omitempty"`
	Status     LoanStatus `json:"status" bson:"status"`
	FineCents  int64      `json:"-" bson:"fine_cents"`
}

// Fine renders the fine as a fixed two-decimal string, e.g. "0.00" or "3.00".
func (l *Loan) Fine() string {
	return FormatCents(l.FineCents)
}

// FineFor computes the fine owed when a loan due on dueDate is returned at
// returnedAt: whole calendar days late times FinePerDayCents, never negative.
func FineFor(dueDate, returnedAt time.Time) int64 {
	due := truncateToDay(dueDate)
	ret := truncateToDay(returnedAt)
	days := int64(ret.Sub(due) / (24 * time.Hour))
	if days <= 0 {
		return 0
	}
	return days * FinePerDayCents
}

// FormatCents renders an amount of cents as "D.CC".
func FormatCents(cents int64) string {
	if cents < 0 {
		cents = 0
	}
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
