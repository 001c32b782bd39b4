package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hanzong05/kitapos-middleware/internal/auth"
	"github.com/hanzong05/kitapos-middleware/internal/config"
	"github.com/hanzong05/kitapos-middleware/internal/domain"
	"github.com/hanzong05/kitapos-middleware/internal/events"
	"github.com/hanzong05/kitapos-middleware/internal/repository"
	apperrors "github.com/hanzong05/kitapos-middleware/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		dispatcher: dispatcher,
		bcryptCost: cfg.BcryptCost,
	}
}

// RegisterInput carries validated registration fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	Phone    *string
}

// Register creates a new account and issues its first token. Registration
// never grants a company or store affiliation, and only unprivileged roles
// may be claimed; both are assigned by an administrator afterwards.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, time.Time, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleCashier
	}
	if !domain.SelfRegisterRole(string(role)) {
		return nil, "", time.Time{}, apperrors.NewValidationError("INVALID_ROLE", "role not available for registration", map[string]any{"role": role})
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("USER_EXISTS", "email already registered")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Issue(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:  events.EventUserRegistered,
			Actor: events.Actor{UserID: user.ID, Role: user.Role},
			Payload: events.UserRegisteredPayload{
				UserID: user.ID,
				Email:  user.Email,
				Role:   user.Role,
			},
		})
	}
	return user, token, exp, nil
}

// Login authenticates an account. An unknown email and a wrong password are
// reported identically so neither leaks account existence.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	invalid := apperrors.NewUnauthorized("INVALID_CREDENTIALS", "invalid email or password")

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, invalid
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, invalid
	}

	token, exp, err := s.tokenMgr.Issue(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Logout is a no-op for stateless JWTs: the server keeps no revocation list,
// so the token stays usable until natural expiry and the call always
// succeeds.
func (s *AuthService) Logout(_ context.Context, _ *auth.Identity) error {
	return nil
}

// ChangePassword verifies the current password before updating to a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, identity *auth.Identity, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, identity.SubjectID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("INVALID_CREDENTIALS", "invalid email or password")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
