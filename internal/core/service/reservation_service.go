package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/librisys/library-system/internal/api/metrics"
	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
)

// ReservationService implements holds. A hold may only be placed against a
// book that is currently available, but placing it does not flip the
// availability flag; only an issued loan does.
type ReservationService struct {
	reservations ports.ReservationRepository
	books        ports.BookRepository
	profiles     ports.ProfileRepository
	ttl          time.Duration
	logger       zerolog.Logger
}

func NewReservationService(
	reservations ports.ReservationRepository,
	books ports.BookRepository,
	profiles ports.ProfileRepository,
	ttl time.Duration,
	logger zerolog.Logger,
) *ReservationService {
	if ttl <= 0 {
		ttl = domain.DefaultReservationTTL
	}
	return &ReservationService{
		reservations: reservations,
		books:        books,
		profiles:     profiles,
		ttl:          ttl,
		logger:       logger,
	}
}

func (s *ReservationService) CreateReservation(ctx context.Context, input ports.CreateReservationInput) (*domain.Reservation, error) {
	book, err := s.books.FindByID(ctx, input.BookID)
	if err != nil {
		return nil, err
	}
	if !book.Available {
		return nil, domain.ErrBookUnavailable
	}

	now := time.Now().UTC()
	reservation := &domain.Reservation{
		BookID:     book.ID,
		UserID:     input.UserID,
		ReservedAt: now,
		ExpiresAt:  now.Add(s.ttl),
		Status:     domain.ReservationActive,
	}

	created, err := s.reservations.Create(ctx, reservation)
	if err != nil {
		s.logger.Error().Err(err).Str("book_id", book.ID).Msg("failed to create reservation")
		return nil, err
	}

	if err := s.profiles.AppendActivity(ctx, input.UserID, domain.ActivityEntry{
		At:   now,
		Note: fmt.Sprintf("Reserved %q until %s", book.Title, created.ExpiresAt.Format("2006-01-02")),
	}); err != nil {
		s.logger.Warn().Err(err).Str("user_id", input.UserID).Msg("failed to append profile activity")
	}

	metrics.ReservationsCreatedTotal.Inc()

	s.logger.Info().
		Str("reservation_id", created.ID).
		Str("book_id", book.ID).
		Str("user_id", input.UserID).
		Time("expires_at", created.ExpiresAt).
		Msg("reservation placed")

	return created, nil
}

// CancelReservation moves an ACTIVE hold to CANCELLED. Only the holder may
// cancel; anyone else gets a flat denial.
func (s *ReservationService) CancelReservation(ctx context.Context, input ports.CancelReservationInput) (*domain.Reservation, error) {
	reservation, err := s.reservations.FindByID(ctx, input.ReservationID)
	if err != nil {
		return nil, err
	}
	if reservation.UserID != input.ActorID {
		return nil, domain.ErrForbidden
	}
	if reservation.EffectiveStatus(time.Now().UTC()) != domain.ReservationActive {
		return nil, domain.ErrReservationNotActive
	}

	if err := s.reservations.Cancel(ctx, reservation.ID); err != nil {
		return nil, err
	}
	reservation.Status = domain.ReservationCancelled

	metrics.ReservationsCancelledTotal.Inc()
	s.logger.Info().Str("reservation_id", reservation.ID).Msg("reservation cancelled")

	return reservation, nil
}

// ListReservations returns holds with lazy expiry folded in: an ACTIVE hold
// past its ExpiresAt reads as EXPIRED. Nothing is written back.
func (s *ReservationService) ListReservations(ctx context.Context, input ports.ListReservationsInput) ([]*domain.Reservation, error) {
	var (
		items []*domain.Reservation
		err   error
	)
	if input.ActorRole == domain.RoleAdmin || input.ActorRole == domain.RoleLibrarian {
		items, err = s.reservations.ListAll(ctx)
	} else {
		items, err = s.reservations.ListByUser(ctx, input.ActorID)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	out := make([]*domain.Reservation, 0, len(items))
	for _, r := range items {
		r.Status = r.EffectiveStatus(now)
		if input.ActiveOnly && r.Status != domain.ReservationActive {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
