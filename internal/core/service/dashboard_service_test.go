package service

import (
	"context"
	"testing"
	"time"

	"github.com/librisys/library-system/internal/core/domain"
)

func dashboardFixture() (*stubProfileRepo, *stubLoanRepo, *stubReservationRepo, *stubReviewRepo, *DashboardService) {
	profiles := newStubProfileRepo()
	loans := newStubLoanRepo()
	reservations := newStubReservationRepo()
	reviews := newStubReviewRepo()
	svc := NewDashboardService(profiles, loans, reservations, reviews, discardLogger)
	return profiles, loans, reservations, reviews, svc
}

func TestDashboardService_MergesAllParts(t *testing.T) {
	profiles, loans, reservations, reviews, svc := dashboardFixture()

	_ = profiles.Create(context.Background(), &domain.Profile{UserID: "user-1", Bio: "hi"})
	loans.addLoan("book-1", "user-1", time.Now().UTC().Add(24*time.Hour), domain.LoanActive)
	loans.addLoan("book-2", "user-1", time.Now().UTC(), domain.LoanReturned)
	reservations.addReservation("book-3", "user-1", time.Now().UTC().Add(time.Hour), domain.ReservationActive)
	_, _ = reviews.Create(context.Background(), &domain.Review{BookID: "book-1", UserID: "user-1", Rating: 5})

	dash, err := svc.GetDashboard(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dash.Profile == nil || dash.Profile.Bio != "hi" {
		t.Error("profile must be included")
	}
	if len(dash.ActiveLoans) != 1 {
		t.Errorf("expected 1 active loan, got %d", len(dash.ActiveLoans))
	}
	if len(dash.ActiveReservations) != 1 {
		t.Errorf("expected 1 active reservation, got %d", len(dash.ActiveReservations))
	}
	if len(dash.Reviews) != 1 {
		t.Errorf("expected 1 review, got %d", len(dash.Reviews))
	}
}

func TestDashboardService_ToleratesMissingProfile(t *testing.T) {
	_, _, _, _, svc := dashboardFixture()

	dash, err := svc.GetDashboard(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("a missing profile must not fail the dashboard: %v", err)
	}
	if dash.Profile != nil {
		t.Error("expected nil profile")
	}
}

func TestDashboardService_ExcludesLapsedReservations(t *testing.T) {
	_, _, reservations, _, svc := dashboardFixture()
	reservations.addReservation("book-1", "user-1", time.Now().UTC().Add(-time.Hour), domain.ReservationActive)
	reservations.addReservation("book-2", "user-1", time.Now().UTC().Add(time.Hour), domain.ReservationCancelled)
	reservations.addReservation("book-3", "user-1", time.Now().UTC().Add(time.Hour), domain.ReservationActive)

	dash, err := svc.GetDashboard(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dash.ActiveReservations) != 1 {
		t.Fatalf("expected only the live hold, got %d", len(dash.ActiveReservations))
	}
	if dash.ActiveReservations[0].BookID != "book-3" {
		t.Errorf("expected book-3's hold, got %s", dash.ActiveReservations[0].BookID)
	}
}

func TestDashboardService_ScopedToUser(t *testing.T) {
	_, loans, _, _, svc := dashboardFixture()
	loans.addLoan("book-1", "user-1", time.Now().UTC().Add(24*time.Hour), domain.LoanActive)
	loans.addLoan("book-2", "user-2", time.Now().UTC().Add(24*time.Hour), domain.LoanActive)

	dash, err := svc.GetDashboard(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dash.ActiveLoans) != 1 {
		t.Fatalf("dashboard must only show the user's own loans, got %d", len(dash.ActiveLoans))
	}
}
