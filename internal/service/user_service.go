package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/hanzong05/kitapos-middleware/internal/auth"
	"github.com/hanzong05/kitapos-middleware/internal/domain"
	"github.com/hanzong05/kitapos-middleware/internal/repository"
	apperrors "github.com/hanzong05/kitapos-middleware/pkg/util"
)

// UserService implements administrative account management. The /users
// surface is super_admin only (enforced by the policy table), so reads are
// unrestricted here.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// CreateUserInput carries validated admin-create fields.
type CreateUserInput struct {
	Name      string
	Email     string
	Password  string
	Phone     *string
	Role      domain.Role
	CompanyID *string
	StoreID   *string
}

// Create provisions an account with an explicit role and affiliation.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.NewConflict("USER_EXISTS", "email already registered")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		Role:         in.Role,
		CompanyID:    in.CompanyID,
		StoreID:      in.StoreID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserInput carries mutable account fields; nil means unchanged.
type UpdateUserInput struct {
	Name      *string
	Phone     *string
	Role      *domain.Role
	CompanyID *string
	StoreID   *string
}

// Update applies partial changes to an account. A role or affiliation change
// takes effect for the target only when they next obtain a token.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = in.Phone
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.CompanyID != nil {
		user.CompanyID = in.CompanyID
	}
	if in.StoreID != nil {
		user.StoreID = in.StoreID
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get fetches one account.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	return user, nil
}

// List pages through accounts.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.users.List(ctx, limit, offset)
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user")
		}
		return err
	}
	return nil
}
