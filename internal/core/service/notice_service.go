package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/librisys/library-system/internal/api/metrics"
	"github.com/librisys/library-system/internal/core/ports"
)

// NoticeService sends a single overdue notice. Failures are isolated per
// recipient: the caller logs and moves on, the batch never aborts.
type noticeService struct {
	notifier ports.Notifier
	log      zerolog.Logger
}

// NewNoticeService returns a NoticeService backed by the given notifier.
func NewNoticeService(notifier ports.Notifier, log zerolog.Logger) ports.NoticeService {
	return &noticeService{notifier: notifier, log: log}
}

func (s *noticeService) Process(ctx context.Context, notice ports.OverdueNotice) error {
	if notice.Recipient == "" {
		s.log.Warn().Str("loan_id", notice.LoanID).Str("username", notice.Username).Msg("no email on account, notice skipped")
		metrics.NoticesSkippedTotal.Inc()
		return nil
	}

	subject := fmt.Sprintf("Overdue Book Notification: %s", notice.BookTitle)
	body := fmt.Sprintf(
		"Dear %s,\n\nYour loan for the book %q was due on %s and is now overdue.\nPlease return the book as soon as possible.\n\nThank you!",
		notice.Username, notice.BookTitle, notice.DueDate.Format("2006-01-02"),
	)

	if err := s.notifier.Send(ctx, notice.Recipient, subject, body); err != nil {
		metrics.NoticesFailedTotal.Inc()
		return fmt.Errorf("send overdue notice: %w", err)
	}

	metrics.NoticesSentTotal.Inc()
	s.log.Info().Str("loan_id", notice.LoanID).Str("recipient", notice.Recipient).Msg("overdue notice sent")
	return nil
}

// OverdueScanner assembles overdue notices from ACTIVE loans past their due
// date. It runs out-of-band (the notify-overdue command), never in the
// request path.
type OverdueScanner struct {
	loans ports.LoanRepository
	books ports.BookRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewOverdueScanner(loans ports.LoanRepository, books ports.BookRepository, users ports.UserRepository, log zerolog.Logger) *OverdueScanner {
	return &OverdueScanner{loans: loans, books: books, users: users, log: log}
}

// Scan returns one notice per overdue loan as of the given time. Lookup
// failures for a single loan are logged and skipped.
func (s *OverdueScanner) Scan(ctx context.Context, asOf time.Time) ([]ports.OverdueNotice, error) {
	overdue, err := s.loans.ListOverdue(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("scan overdue loans: %w", err)
	}

	notices := make([]ports.OverdueNotice, 0, len(overdue))
	for _, loan := range overdue {
		user, err := s.users.FindByID(ctx, loan.UserID)
		if err != nil {
			s.log.Warn().Err(err).Str("loan_id", loan.ID).Msg("borrower lookup failed, notice skipped")
			continue
		}

		title := loan.BookID
		if book, err := s.books.FindByID(ctx, loan.BookID); err == nil {
			title = book.Title
		}

		notices = append(notices, ports.OverdueNotice{
			LoanID:    loan.ID,
			Recipient: user.Email,
			Username:  user.Username,
			BookTitle: title,
			DueDate:   loan.DueDate,
		})
	}
	return notices, nil
}
