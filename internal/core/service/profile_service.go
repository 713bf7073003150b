package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
)

// ProfileService exposes a user's own profile record.
type ProfileService struct {
	profiles ports.ProfileRepository
	logger   zerolog.Logger
}

func NewProfileService(profiles ports.ProfileRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, logger: logger}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profiles.FindByUserID(ctx, userID)
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID, bio string) (*domain.Profile, error) {
	updated, err := s.profiles.UpdateBio(ctx, userID, bio)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", userID).Msg("profile updated")
	return updated, nil
}
