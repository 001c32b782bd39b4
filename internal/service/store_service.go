package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/hanzong05/kitapos-middleware/internal/auth"
	"github.com/hanzong05/kitapos-middleware/internal/domain"
	"github.com/hanzong05/kitapos-middleware/internal/events"
	"github.com/hanzong05/kitapos-middleware/internal/repository"
	apperrors "github.com/hanzong05/kitapos-middleware/pkg/util"
)

// StoreService manages stores. Stores are company-scoped: listings follow
// the caller's company, and creation stamps the caller's company unless the
// caller is a super_admin supplying one explicitly.
type StoreService struct {
	stores     repository.StoreRepository
	dispatcher events.Dispatcher
}

// NewStoreService builds the service.
func NewStoreService(stores repository.StoreRepository, dispatcher events.Dispatcher) *StoreService {
	return &StoreService{stores: stores, dispatcher: dispatcher}
}

// List returns the stores visible to the identity.
func (s *StoreService) List(ctx context.Context, identity *auth.Identity, override auth.Override) ([]domain.Store, error) {
	scope := auth.ResolveScope(identity, auth.ScopedByCompany, override)
	return s.stores.List(ctx, scope)
}

// Get fetches one store within scope.
func (s *StoreService) Get(ctx context.Context, identity *auth.Identity, id string) (*domain.Store, error) {
	scope := auth.ResolveScope(identity, auth.ScopedByCompany, auth.Override{})
	store, err := s.stores.GetByID(ctx, id, scope)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("store")
		}
		return nil, err
	}
	return store, nil
}

// Create opens a new store under the caller's company scope.
func (s *StoreService) Create(ctx context.Context, identity *auth.Identity, companyID, name string, address *string) (*domain.Store, error) {
	stampedCompany, err := auth.EnforceCompanyOwnership(identity, companyID)
	if err != nil {
		return nil, err
	}

	store := &domain.Store{
		CompanyID: stampedCompany,
		Name:      name,
		Address:   address,
		Active:    true,
	}
	if err := s.stores.Create(ctx, store); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:    events.EventStoreCreated,
			StoreID: store.ID,
			Actor:   events.Actor{UserID: identity.SubjectID, Role: identity.Role},
			Payload: events.StoreCreatedPayload{
				StoreID:   store.ID,
				CompanyID: store.CompanyID,
				Name:      store.Name,
			},
		})
	}
	return store, nil
}

// Update applies partial changes to a store within scope.
func (s *StoreService) Update(ctx context.Context, identity *auth.Identity, id string, name *string, address *string, active *bool) (*domain.Store, error) {
	store, err := s.Get(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		store.Name = *name
	}
	if address != nil {
		store.Address = address
	}
	if active != nil {
		store.Active = *active
	}
	if err := s.stores.Update(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// Delete removes a store.
func (s *StoreService) Delete(ctx context.Context, id string) error {
	if err := s.stores.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("store")
		}
		return err
	}
	return nil
}
