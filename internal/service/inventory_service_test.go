package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanzong05/kitapos-middleware/internal/auth"
	"github.com/hanzong05/kitapos-middleware/internal/domain"
	"github.com/hanzong05/kitapos-middleware/internal/events"
	"github.com/hanzong05/kitapos-middleware/internal/repository"
	"github.com/hanzong05/kitapos-middleware/internal/service"
	apperrors "github.com/hanzong05/kitapos-middleware/pkg/util"
)

// fakeProductRepository serves products from memory, honoring the scope
// predicate the way the SQL implementation does.
type fakeProductRepository struct {
	seq      int
	products map[string]*domain.Product
}

func newFakeProductRepository() *fakeProductRepository {
	return &fakeProductRepository{products: make(map[string]*domain.Product)}
}

func (f *fakeProductRepository) inScope(p *domain.Product, scope auth.Scope) bool {
	switch scope.Kind {
	case auth.ScopeUnrestricted:
		return true
	case auth.ScopeStore:
		return p.StoreID == scope.ID
	default:
		return false
	}
}

func (f *fakeProductRepository) Create(_ context.Context, product *domain.Product) error {
	f.seq++
	product.ID = fmt.Sprintf("prod-%d", f.seq)
	clone := *product
	f.products[product.ID] = &clone
	return nil
}

func (f *fakeProductRepository) Update(_ context.Context, product *domain.Product) error {
	stored, ok := f.products[product.ID]
	if !ok || stored.StoreID != product.StoreID {
		return pgx.ErrNoRows
	}
	clone := *product
	f.products[product.ID] = &clone
	return nil
}

func (f *fakeProductRepository) Delete(_ context.Context, id string, scope auth.Scope) error {
	stored, ok := f.products[id]
	if !ok || !f.inScope(stored, scope) {
		return pgx.ErrNoRows
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepository) GetByID(_ context.Context, id string, scope auth.Scope) (*domain.Product, error) {
	stored, ok := f.products[id]
	if !ok || !f.inScope(stored, scope) {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (f *fakeProductRepository) GetBySKU(_ context.Context, storeID, sku string) (*domain.Product, error) {
	for _, p := range f.products {
		if p.StoreID == storeID && p.SKU == sku {
			clone := *p
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeProductRepository) List(_ context.Context, scope auth.Scope, filter repository.ProductFilter) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.products {
		if !f.inScope(p, scope) {
			continue
		}
		if filter.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.ActiveOnly && !p.Active {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

// fakeInventoryRepository applies stock deltas against the product fake and
// appends to an in-memory ledger, mirroring the transactional guard.
type fakeInventoryRepository struct {
	seq       int
	products  *fakeProductRepository
	movements []domain.InventoryMovement
}

func newFakeInventoryRepository(products *fakeProductRepository) *fakeInventoryRepository {
	return &fakeInventoryRepository{products: products}
}

func (f *fakeInventoryRepository) Record(_ context.Context, movement *domain.InventoryMovement) (int, error) {
	product, ok := f.products.products[movement.ProductID]
	if !ok || product.StoreID != movement.StoreID {
		return 0, repository.ErrInsufficientStock
	}
	newStock := product.Stock + movement.Kind.Delta(movement.Quantity)
	if newStock < 0 {
		return 0, repository.ErrInsufficientStock
	}
	product.Stock = newStock

	f.seq++
	movement.ID = fmt.Sprintf("mov-%d", f.seq)
	f.movements = append(f.movements, *movement)
	return newStock, nil
}

func (f *fakeInventoryRepository) GetByID(_ context.Context, id string, scope auth.Scope) (*domain.InventoryMovement, error) {
	for _, m := range f.movements {
		if m.ID != id {
			continue
		}
		if scope.Kind == auth.ScopeStore && m.StoreID != scope.ID {
			return nil, pgx.ErrNoRows
		}
		if scope.Kind == auth.ScopeNone {
			return nil, pgx.ErrNoRows
		}
		clone := m
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeInventoryRepository) List(_ context.Context, scope auth.Scope, filter repository.MovementFilter) ([]domain.InventoryMovement, error) {
	var out []domain.InventoryMovement
	for _, m := range f.movements {
		switch scope.Kind {
		case auth.ScopeUnrestricted:
		case auth.ScopeStore:
			if m.StoreID != scope.ID {
				continue
			}
		default:
			continue
		}
		if filter.ProductID != nil && m.ProductID != *filter.ProductID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// countingInvalidator tallies product cache invalidations.
type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) InvalidateProductCache(_ context.Context) { c.calls++ }

type inventoryFixture struct {
	products    *fakeProductRepository
	movements   *fakeInventoryRepository
	svc         *service.InventoryService
	events      *[]events.Event
	invalidator *countingInvalidator
}

func newInventoryFixture(t *testing.T, lowStockThreshold int) *inventoryFixture {
	t.Helper()
	products := newFakeProductRepository()
	movements := newFakeInventoryRepository(products)

	dispatcher := events.NewInMemoryDispatcher()
	published := &[]events.Event{}
	record := func(_ context.Context, e events.Event) error {
		*published = append(*published, e)
		return nil
	}
	dispatcher.Subscribe(events.EventStockMovementRecorded, record)
	dispatcher.Subscribe(events.EventLowStockDetected, record)

	invalidator := &countingInvalidator{}

	return &inventoryFixture{
		products:    products,
		movements:   movements,
		svc:         service.NewInventoryService(movements, products, dispatcher, invalidator, lowStockThreshold),
		events:      published,
		invalidator: invalidator,
	}
}

func (fx *inventoryFixture) seedProduct(t *testing.T, storeID, sku string, stock int) *domain.Product {
	t.Helper()
	product := &domain.Product{StoreID: storeID, SKU: sku, Name: sku, Price: 9.99, Stock: stock, Active: true}
	require.NoError(t, fx.products.Create(context.Background(), product))
	return product
}

func cashierAt(storeID string) *auth.Identity {
	return &auth.Identity{SubjectID: "cashier-1", Role: domain.RoleCashier, StoreID: strptrSvc(storeID)}
}

func strptrSvc(s string) *string { return &s }

func TestInventoryService_Sale(t *testing.T) {
	fx := newInventoryFixture(t, 5)
	product := fx.seedProduct(t, "store-7", "SKU-1", 20)

	movement, newStock, err := fx.svc.RecordMovement(context.Background(), cashierAt("store-7"), service.RecordMovementInput{
		ProductID: product.ID,
		Kind:      domain.MovementSale,
		Quantity:  3,
	})
	require.NoError(t, err)
	assert.Equal(t, 17, newStock)
	assert.Equal(t, "store-7", movement.StoreID, "movement stamped with caller store")
	assert.Equal(t, "cashier-1", movement.CreatedBy)
	assert.NotEmpty(t, movement.ID)

	require.Len(t, *fx.events, 1)
	assert.Equal(t, events.EventStockMovementRecorded, (*fx.events)[0].Type)
}

func TestInventoryService_MovementInvalidatesProductCache(t *testing.T) {
	fx := newInventoryFixture(t, 0)
	product := fx.seedProduct(t, "store-7", "SKU-1", 10)
	identity := cashierAt("store-7")

	_, _, err := fx.svc.RecordMovement(context.Background(), identity, service.RecordMovementInput{
		ProductID: product.ID, Kind: domain.MovementSale, Quantity: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fx.invalidator.calls, "successful movement orphans cached listings")

	// A rejected movement leaves stock untouched, so the cache stays valid.
	_, _, err = fx.svc.RecordMovement(context.Background(), identity, service.RecordMovementInput{
		ProductID: product.ID, Kind: domain.MovementSale, Quantity: 100,
	})
	require.Error(t, err)
	assert.Equal(t, 1, fx.invalidator.calls)
}

func TestInventoryService_RestockAndAdjustment(t *testing.T) {
	fx := newInventoryFixture(t, 0)
	product := fx.seedProduct(t, "store-7", "SKU-1", 10)
	identity := cashierAt("store-7")

	_, newStock, err := fx.svc.RecordMovement(context.Background(), identity, service.RecordMovementInput{
		ProductID: product.ID, Kind: domain.MovementRestock, Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 15, newStock)

	_, newStock, err = fx.svc.RecordMovement(context.Background(), identity, service.RecordMovementInput{
		ProductID: product.ID, Kind: domain.MovementAdjustment, Quantity: -4,
	})
	require.NoError(t, err)
	assert.Equal(t, 11, newStock)
}

func TestInventoryService_InsufficientStock(t *testing.T) {
	fx := newInventoryFixture(t, 0)
	product := fx.seedProduct(t, "store-7", "SKU-1", 2)

	_, _, err := fx.svc.RecordMovement(context.Background(), cashierAt("store-7"), service.RecordMovementInput{
		ProductID: product.ID, Kind: domain.MovementSale, Quantity: 3,
	})
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "INSUFFICIENT_STOCK", de.Code)
	assert.Equal(t, 400, de.HTTPStatus)
	assert.Equal(t, 2, de.Details["stock"])
	assert.Equal(t, 3, de.Details["requested"])

	// Stock untouched, no ledger entry, no events.
	assert.Equal(t, 2, fx.products.products[product.ID].Stock)
	assert.Empty(t, fx.movements.movements)
	assert.Empty(t, *fx.events)
}

func TestInventoryService_LowStockEvent(t *testing.T) {
	fx := newInventoryFixture(t, 5)
	product := fx.seedProduct(t, "store-7", "SKU-1", 6)

	_, newStock, err := fx.svc.RecordMovement(context.Background(), cashierAt("store-7"), service.RecordMovementInput{
		ProductID: product.ID, Kind: domain.MovementSale, Quantity: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, newStock)

	require.Len(t, *fx.events, 2)
	assert.Equal(t, events.EventStockMovementRecorded, (*fx.events)[0].Type)
	assert.Equal(t, events.EventLowStockDetected, (*fx.events)[1].Type)
	payload, ok := (*fx.events)[1].Payload.(events.LowStockPayload)
	require.True(t, ok)
	assert.Equal(t, 4, payload.Stock)
	assert.Equal(t, 5, payload.Threshold)
}

func TestInventoryService_ForeignStoreDeniedBeforeLookup(t *testing.T) {
	fx := newInventoryFixture(t, 0)
	product := fx.seedProduct(t, "store-9", "SKU-9", 10)

	_, _, err := fx.svc.RecordMovement(context.Background(), cashierAt("store-7"), service.RecordMovementInput{
		StoreID:   "store-9",
		ProductID: product.ID,
		Kind:      domain.MovementSale,
		Quantity:  1,
	})
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "STORE_ACCESS_DENIED", de.Code)
	assert.Equal(t, 403, de.HTTPStatus)
	assert.Empty(t, fx.movements.movements)
}

func TestInventoryService_ForeignProductReads404(t *testing.T) {
	fx := newInventoryFixture(t, 0)
	product := fx.seedProduct(t, "store-9", "SKU-9", 10)

	// The product exists in another store; without naming that store the
	// caller's own scope is stamped and the lookup misses uniformly.
	_, _, err := fx.svc.RecordMovement(context.Background(), cashierAt("store-7"), service.RecordMovementInput{
		ProductID: product.ID,
		Kind:      domain.MovementSale,
		Quantity:  1,
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestInventoryService_AdminMustNameStore(t *testing.T) {
	fx := newInventoryFixture(t, 0)
	product := fx.seedProduct(t, "store-7", "SKU-1", 10)

	admin := &auth.Identity{SubjectID: "admin-1", Role: domain.RoleSuperAdmin}

	_, _, err := fx.svc.RecordMovement(context.Background(), admin, service.RecordMovementInput{
		ProductID: product.ID, Kind: domain.MovementSale, Quantity: 1,
	})
	require.Error(t, err)
	assert.Equal(t, "MISSING_STORE_ID", apperrors.ToDomainError(err).Code)

	_, newStock, err := fx.svc.RecordMovement(context.Background(), admin, service.RecordMovementInput{
		StoreID: "store-7", ProductID: product.ID, Kind: domain.MovementSale, Quantity: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, newStock)
}

func TestInventoryService_ListScoping(t *testing.T) {
	fx := newInventoryFixture(t, 0)
	p7 := fx.seedProduct(t, "store-7", "SKU-7", 10)
	p9 := fx.seedProduct(t, "store-9", "SKU-9", 10)

	_, _, err := fx.svc.RecordMovement(context.Background(), cashierAt("store-7"), service.RecordMovementInput{
		ProductID: p7.ID, Kind: domain.MovementSale, Quantity: 1,
	})
	require.NoError(t, err)
	_, _, err = fx.svc.RecordMovement(context.Background(), cashierAt("store-9"), service.RecordMovementInput{
		ProductID: p9.ID, Kind: domain.MovementSale, Quantity: 1,
	})
	require.NoError(t, err)

	// Store-scoped caller sees only its own ledger.
	got, err := fx.svc.List(context.Background(), cashierAt("store-7"), auth.Override{}, repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "store-7", got[0].StoreID)

	// A foreign override is ignored for non-admins.
	got, err = fx.svc.List(context.Background(), cashierAt("store-7"), auth.Override{StoreID: "store-9"}, repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "store-7", got[0].StoreID)

	// Admin sees everything, or narrows with the override.
	admin := &auth.Identity{SubjectID: "admin-1", Role: domain.RoleSuperAdmin}
	got, err = fx.svc.List(context.Background(), admin, auth.Override{}, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = fx.svc.List(context.Background(), admin, auth.Override{StoreID: "store-9"}, repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "store-9", got[0].StoreID)
}
