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

// StaffService manages store rosters. Every operation is store-scoped.
type StaffService struct {
	staff repository.StaffRepository
}

// NewStaffService builds the service.
func NewStaffService(staff repository.StaffRepository) *StaffService {
	return &StaffService{staff: staff}
}

// List returns the roster visible to the identity.
func (s *StaffService) List(ctx context.Context, identity *auth.Identity, override auth.Override) ([]domain.StaffMember, error) {
	scope := auth.ResolveScope(identity, auth.ScopedByStore, override)
	return s.staff.List(ctx, scope)
}

// Get fetches one roster entry within scope.
func (s *StaffService) Get(ctx context.Context, identity *auth.Identity, id string) (*domain.StaffMember, error) {
	scope := auth.ResolveScope(identity, auth.ScopedByStore, auth.Override{})
	member, err := s.staff.GetByID(ctx, id, scope)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff member")
		}
		return nil, err
	}
	return member, nil
}

// CreateStaffInput carries validated roster-create fields.
type CreateStaffInput struct {
	StoreID string
	UserID  *string
	Name    string
	Email   string
	Role    domain.Role
}

// Create adds a roster entry, stamped with the caller's store scope.
func (s *StaffService) Create(ctx context.Context, identity *auth.Identity, in CreateStaffInput) (*domain.StaffMember, error) {
	storeID, err := auth.EnforceStoreOwnership(identity, in.StoreID)
	if err != nil {
		return nil, err
	}

	member := &domain.StaffMember{
		StoreID: storeID,
		UserID:  in.UserID,
		Name:    in.Name,
		Email:   in.Email,
		Role:    in.Role,
		Active:  true,
	}
	if err := s.staff.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// UpdateStaffInput carries mutable roster fields; nil means unchanged.
type UpdateStaffInput struct {
	Name   *string
	Email  *string
	Role   *domain.Role
	Active *bool
}

// Update applies partial changes to a roster entry within scope.
func (s *StaffService) Update(ctx context.Context, identity *auth.Identity, id string, in UpdateStaffInput) (*domain.StaffMember, error) {
	member, err := s.Get(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	if _, err := auth.EnforceStoreOwnership(identity, member.StoreID); err != nil {
		return nil, err
	}

	if in.Name != nil {
		member.Name = *in.Name
	}
	if in.Email != nil {
		member.Email = *in.Email
	}
	if in.Role != nil {
		member.Role = *in.Role
	}
	if in.Active != nil {
		member.Active = *in.Active
	}

	if err := s.staff.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// Delete removes a roster entry within scope.
func (s *StaffService) Delete(ctx context.Context, identity *auth.Identity, id string) error {
	scope := auth.ResolveScope(identity, auth.ScopedByStore, auth.Override{})
	if err := s.staff.Delete(ctx, id, scope); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("staff member")
		}
		return err
	}
	return nil
}
