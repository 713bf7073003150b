package domain

import (
	"testing"
	"time"
)

func TestFineFor(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	cases := []struct {
		name       string
		dueDate    time.Time
		returnedAt time.Time
		wantCents  int64
	}{
		{"returned early", day(2026, 8, 10), day(2026, 8, 5), 0},
		{"returned on due date", day(2026, 8, 10), day(2026, 8, 10), 0},
		{"one day late", day(2026, 8, 10), day(2026, 8, 11), 100},
		{"three days late", day(2026, 8, 10), day(2026, 8, 13), 300},
		{"same day later hour still on time", day(2026, 8, 10), time.Date(2026, 8, 10, 23, 59, 0, 0, time.UTC), 0},
		{"partial day counts as whole day", time.Date(2026, 8, 10, 23, 0, 0, 0, time.UTC), time.Date(2026, 8, 11, 1, 0, 0, 0, time.UTC), 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FineFor(tc.dueDate, tc.returnedAt)
			if got != tc.wantCents {
				t.Errorf("FineFor(%v, %v) = %d, want %d", tc.dueDate, tc.returnedAt, got, tc.wantCents)
			}
		})
	}
}

func TestLoanFineRendering(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{100, "1.00"},
		{350, "3.50"},
		{1205, "12.05"},
		{-50, "0.00"},
	}
	for _, tc := range cases {
		l := Loan{FineCents: tc.cents}
		if got := l.Fine(); got != tc.want {
			t.Errorf("Fine() with %d cents = %q, want %q", tc.cents, got, tc.want)
		}
	}
}
