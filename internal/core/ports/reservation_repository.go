package ports

import (
	"context"

	"github.com/librisys/library-system/internal/core/domain"
)

// ReservationRepository defines persistence operations for reservations.
type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
	FindByID(ctx context.Context, id string) (*domain.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Reservation, error)
	ListAll(ctx context.Context) ([]*domain.Reservation, error)

	// Cancel atomically moves a reservation from ACTIVE to CANCELLED. The
	// update is conditional on the current status; anything else yields
	// ErrReservationNotActive.
	Cancel(ctx context.Context, id string) error
}
