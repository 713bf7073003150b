package ports

import (
	"context"

	"github.com/librisys/library-system/internal/core/domain"
)

// RegisterInput carries all data needed to create an account. The account
// starts inactive; an activation link goes out through the notifier.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// AuthService implements registration, activation and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Activate flips the account's Active flag when the time-limited token
	// matches the user id.
	Activate(ctx context.Context, userID, token string) error
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

// ProfileService exposes a user's own profile.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID, bio string) (*domain.Profile, error)
}
