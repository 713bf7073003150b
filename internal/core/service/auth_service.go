package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
)

const activationTTL = 24 * time.Hour

// AuthService implements registration, account activation and login.
// Registration creates an inactive account plus its profile, then sends an
// activation link out-of-band through the notifier.
type AuthService struct {
	users     ports.UserRepository
	profiles  ports.ProfileRepository
	notifier  ports.Notifier
	jwtSecret string
	tokenTTL  time.Duration
	baseURL   string
	logger    zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	profiles ports.ProfileRepository,
	notifier ports.Notifier,
	jwtSecret string,
	tokenTTL time.Duration,
	baseURL string,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		profiles:  profiles,
		notifier:  notifier,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		baseURL:   baseURL,
		logger:    logger,
	}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	role := input.Role
	if role == "" {
		role = domain.RoleReader
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       false,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	// Profile creation is an explicit post-registration step, not a hidden
	// persistence trigger.
	if err := s.profiles.Create(ctx, &domain.Profile{UserID: created.ID}); err != nil {
		s.logger.Error().Err(err).Str("user_id", created.ID).Msg("failed to create profile")
	}

	s.sendActivationLink(ctx, created)

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Activate validates the time-limited token against the user id and flips
// the Active flag. Forged or expired tokens change nothing.
func (s *AuthService) Activate(ctx context.Context, userID, token string) error {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return domain.ErrInvalidActivation
	}
	if purpose, _ := claims["purpose"].(string); purpose != "activation" {
		return domain.ErrInvalidActivation
	}
	if sub, _ := claims["sub"].(string); sub != userID {
		return domain.ErrInvalidActivation
	}

	if err := s.users.Activate(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Msg("account activated")
	return nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if !user.Active {
		return "", nil, domain.ErrUserInactive
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// ActivationToken mints the time-limited token embedded in the activation
// link. Exported so tests and the notifier body share one format.
func (s *AuthService) ActivationToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":     user.ID,
		"purpose": "activation",
		"exp":     time.Now().Add(activationTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// sendActivationLink delivers the activation email best-effort: a delivery
// failure is logged and does not fail registration.
func (s *AuthService) sendActivationLink(ctx context.Context, user *domain.User) {
	if user.Email == "" {
		s.logger.Warn().Str("username", user.Username).Msg("no email on account, skipping activation link")
		return
	}

	token, err := s.ActivationToken(user)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to mint activation token")
		return
	}

	link := fmt.Sprintf("%s/auth/activate/%s/%s", s.baseURL, user.ID, token)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour library account has been created. Activate it within 24 hours:\n\n%s\n\nThank you!",
		user.Username, link,
	)

	if err := s.notifier.Send(ctx, user.Email, "Activate your library account", body); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to send activation link")
	}
}
