package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
)

// DashboardService fans out four independent reads and merges them. The four
// queries are not wrapped in a transaction; a snapshot anomaly across them is
// acceptable for this read-only view.
type DashboardService struct {
	profiles     ports.ProfileRepository
	loans        ports.LoanRepository
	reservations ports.ReservationRepository
	reviews      ports.ReviewRepository
	logger       zerolog.Logger
}

func NewDashboardService(
	profiles ports.ProfileRepository,
	loans ports.LoanRepository,
	reservations ports.ReservationRepository,
	reviews ports.ReviewRepository,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		profiles:     profiles,
		loans:        loans,
		reservations: reservations,
		reviews:      reviews,
		logger:       logger,
	}
}

func (s *DashboardService) GetDashboard(ctx context.Context, userID string) (*ports.Dashboard, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, fmt.Errorf("dashboard: profile: %w", err)
	}

	loans, err := s.loans.ListByUser(ctx, userID, true)
	if err != nil {
		return nil, fmt.Errorf("dashboard: loans: %w", err)
	}

	reservations, err := s.reservations.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: reservations: %w", err)
	}
	now := time.Now().UTC()
	active := make([]*domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.EffectiveStatus(now) == domain.ReservationActive {
			active = append(active, r)
		}
	}

	reviews, err := s.reviews.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: reviews: %w", err)
	}

	return &ports.Dashboard{
		Profile:            profile,
		ActiveLoans:        loans,
		ActiveReservations: active,
		Reviews:            reviews,
	}, nil
}
