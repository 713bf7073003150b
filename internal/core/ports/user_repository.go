package ports

import (
	"context"

	"github.com/librisys/library-system/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// Create inserts a user; a duplicate username yields ErrUserExists.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Activate sets the Active flag.
	Activate(ctx context.Context, id string) error
}

// ProfileRepository defines persistence for the one-to-one user profile.
type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) error
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateBio(ctx context.Context, userID, bio string) (*domain.Profile, error)
	// AppendActivity pushes one entry onto the profile's activity log.
	AppendActivity(ctx context.Context, userID string, entry domain.ActivityEntry) error
}
