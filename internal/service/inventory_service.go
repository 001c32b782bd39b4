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

// ProductCacheInvalidator drops cached product listings after a write that
// changes what a listing would show. CatalogService satisfies it.
type ProductCacheInvalidator interface {
	InvalidateProductCache(ctx context.Context)
}

// InventoryService records stock movements and serves the movement ledger.
type InventoryService struct {
	movements         repository.InventoryRepository
	products          repository.ProductRepository
	dispatcher        events.Dispatcher
	cache             ProductCacheInvalidator
	lowStockThreshold int
}

// NewInventoryService builds the service. cache may be nil.
func NewInventoryService(
	movements repository.InventoryRepository,
	products repository.ProductRepository,
	dispatcher events.Dispatcher,
	cache ProductCacheInvalidator,
	lowStockThreshold int,
) *InventoryService {
	return &InventoryService{
		movements:         movements,
		products:          products,
		dispatcher:        dispatcher,
		cache:             cache,
		lowStockThreshold: lowStockThreshold,
	}
}

// RecordMovementInput carries validated movement fields.
type RecordMovementInput struct {
	StoreID   string
	ProductID string
	Kind      domain.MovementKind
	Quantity  int
	Note      *string
}

// RecordMovement applies one stock movement. Scope is enforced before any
// database interaction; the stock arithmetic and the ledger insert commit in
// one transaction. A sale that would drive stock negative is rejected.
func (s *InventoryService) RecordMovement(ctx context.Context, identity *auth.Identity, in RecordMovementInput) (*domain.InventoryMovement, int, error) {
	storeID, err := auth.EnforceStoreOwnership(identity, in.StoreID)
	if err != nil {
		return nil, 0, err
	}

	// Existence check inside the stamped scope; an out-of-scope product is
	// indistinguishable from a missing one.
	product, err := s.products.GetByID(ctx, in.ProductID, auth.Scope{Kind: auth.ScopeStore, ID: storeID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, apperrors.NewNotFound("product")
		}
		return nil, 0, err
	}

	movement := &domain.InventoryMovement{
		StoreID:   storeID,
		ProductID: product.ID,
		Kind:      in.Kind,
		Quantity:  in.Quantity,
		Note:      in.Note,
		CreatedBy: identity.SubjectID,
	}

	newStock, err := s.movements.Record(ctx, movement)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, 0, apperrors.NewValidationError("INSUFFICIENT_STOCK", "movement would drive stock negative", map[string]any{
				"product_id": product.ID,
				"stock":      product.Stock,
				"requested":  in.Quantity,
			})
		}
		return nil, 0, err
	}

	// The movement changed products.stock, so cached listings are stale.
	if s.cache != nil {
		s.cache.InvalidateProductCache(ctx)
	}

	if s.dispatcher != nil {
		actor := events.Actor{UserID: identity.SubjectID, Role: identity.Role}
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:    events.EventStockMovementRecorded,
			StoreID: storeID,
			Actor:   actor,
			Payload: events.StockMovementPayload{
				MovementID: movement.ID,
				ProductID:  product.ID,
				Kind:       movement.Kind,
				Quantity:   movement.Quantity,
				NewStock:   newStock,
			},
		})
		if newStock < s.lowStockThreshold {
			_ = s.dispatcher.Publish(ctx, events.Event{
				Type:    events.EventLowStockDetected,
				StoreID: storeID,
				Actor:   actor,
				Payload: events.LowStockPayload{
					ProductID: product.ID,
					SKU:       product.SKU,
					Stock:     newStock,
					Threshold: s.lowStockThreshold,
				},
			})
		}
	}

	return movement, newStock, nil
}

// List returns the movements visible to the identity.
func (s *InventoryService) List(ctx context.Context, identity *auth.Identity, override auth.Override, filter repository.MovementFilter) ([]domain.InventoryMovement, error) {
	scope := auth.ResolveScope(identity, auth.ScopedByStore, override)
	return s.movements.List(ctx, scope, filter)
}

// Get fetches one movement within scope.
func (s *InventoryService) Get(ctx context.Context, identity *auth.Identity, id string) (*domain.InventoryMovement, error) {
	scope := auth.ResolveScope(identity, auth.ScopedByStore, auth.Override{})
	movement, err := s.movements.GetByID(ctx, id, scope)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("movement")
		}
		return nil, err
	}
	return movement, nil
}
