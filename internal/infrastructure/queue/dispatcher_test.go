package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/librisys/library-system/internal/core/ports"
)

type recordingNoticeService struct {
	mu        sync.Mutex
	processed []ports.OverdueNotice
}

func (s *recordingNoticeService) Process(_ context.Context, n ports.OverdueNotice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed = append(s.processed, n)
	return nil
}

func TestDispatcher_ProcessesAllNotices(t *testing.T) {
	svc := &recordingNoticeService{}
	d := NewDispatcher(3, svc, zerolog.Nop())
	d.Start(context.Background())

	notices := []ports.OverdueNotice{
		{LoanID: "loan-1", Recipient: "a@example.com"},
		{LoanID: "loan-2", Recipient: "b@example.com"},
		{LoanID: "loan-3", Recipient: "c@example.com"},
		{LoanID: "loan-4", Recipient: ""},
	}
	d.EnqueueBatch(notices)
	d.Close()

	if len(svc.processed) != len(notices) {
		t.Fatalf("expected %d processed notices, got %d", len(notices), len(svc.processed))
	}
}

func TestDispatcher_PreservesPerRecipientOrder(t *testing.T) {
	svc := &recordingNoticeService{}
	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(context.Background())

	for i := 0; i < 5; i++ {
		d.Enqueue(ports.OverdueNotice{LoanID: loanID(i), Recipient: "same@example.com"})
	}
	d.Close()

	for i, n := range svc.processed {
		if n.LoanID != loanID(i) {
			t.Fatalf("order broken at %d: got %s", i, n.LoanID)
		}
	}
}

func TestDispatcher_DefaultsWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &recordingNoticeService{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Errorf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func loanID(i int) string {
	return fmt.Sprintf("loan-%d", i)
}
