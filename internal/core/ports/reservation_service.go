package ports

import (
	"context"

	"github.com/librisys/library-system/internal/core/domain"
)

// CreateReservationInput carries all data needed to place a hold.
type CreateReservationInput struct {
	BookID string
	UserID string
}

// CancelReservationInput identifies the reservation and the acting user.
// Only the holder may cancel.
type CancelReservationInput struct {
	ReservationID string
	ActorID       string
}

// ListReservationsInput scopes a reservation listing.
type ListReservationsInput struct {
	ActorID    string
	ActorRole  string
	ActiveOnly bool
}

// ReservationService implements the hold lifecycle. Expiry is lazy: reads
// fold a lapsed ACTIVE hold into EXPIRED without writing back.
type ReservationService interface {
	CreateReservation(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error)
	CancelReservation(ctx context.Context, input CancelReservationInput) (*domain.Reservation, error)
	ListReservations(ctx context.Context, input ListReservationsInput) ([]*domain.Reservation, error)
}
