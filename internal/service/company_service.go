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

// CompanyService manages tenants. Creation and mutation are super_admin
// operations (policy table); reads are scope-filtered so a manager sees only
// their own company.
type CompanyService struct {
	companies repository.CompanyRepository
}

// NewCompanyService builds the service.
func NewCompanyService(companies repository.CompanyRepository) *CompanyService {
	return &CompanyService{companies: companies}
}

// List returns the companies visible to the identity.
func (s *CompanyService) List(ctx context.Context, identity *auth.Identity, override auth.Override) ([]domain.Company, error) {
	scope := auth.ResolveScope(identity, auth.ScopedByCompany, override)
	return s.companies.List(ctx, scope)
}

// Get fetches one company within scope. An out-of-scope id reads as absent.
func (s *CompanyService) Get(ctx context.Context, identity *auth.Identity, id string) (*domain.Company, error) {
	scope := auth.ResolveScope(identity, auth.ScopedByCompany, auth.Override{})
	company, err := s.companies.GetByID(ctx, id, scope)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("company")
		}
		return nil, err
	}
	return company, nil
}

// Create registers a new tenant.
func (s *CompanyService) Create(ctx context.Context, name string, taxID, address *string) (*domain.Company, error) {
	company := &domain.Company{Name: name, TaxID: taxID, Address: address}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// Update applies partial changes to a company.
func (s *CompanyService) Update(ctx context.Context, identity *auth.Identity, id string, name *string, taxID, address *string) (*domain.Company, error) {
	company, err := s.Get(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		company.Name = *name
	}
	if taxID != nil {
		company.TaxID = taxID
	}
	if address != nil {
		company.Address = address
	}
	if err := s.companies.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// Delete removes a company.
func (s *CompanyService) Delete(ctx context.Context, id string) error {
	if err := s.companies.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("company")
		}
		return err
	}
	return nil
}
