package ports

import (
	"context"
	"time"
)

// Notifier delivers a single message to one recipient. Delivery is
// best-effort; callers log and skip failures per recipient.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// OverdueNotice is the DTO handed from the batch scan to the notice workers.
type OverdueNotice struct {
	LoanID    string
	Recipient string // email; may be empty, in which case the notice is skipped
	Username  string
	BookTitle string
	DueDate   time.Time
}

// NoticeService processes a single overdue notice.
type NoticeService interface {
	Process(ctx context.Context, notice OverdueNotice) error
}
