package ports

import (
	"context"

	"github.com/librisys/library-system/internal/core/domain"
)

// Dashboard is the merged read-only view of a user's library state. It is
// assembled from four independent reads with no cross-read consistency
// guarantee.
type Dashboard struct {
	Profile            *domain.Profile
	ActiveLoans        []*domain.Loan
	ActiveReservations []*domain.Reservation
	Reviews            []*domain.Review
}

// DashboardService aggregates a user's profile, loans, reservations and
// reviews into one response.
type DashboardService interface {
	GetDashboard(ctx context.Context, userID string) (*Dashboard, error)
}
