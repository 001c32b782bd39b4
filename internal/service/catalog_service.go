package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/hanzong05/kitapos-middleware/internal/auth"
	"github.com/hanzong05/kitapos-middleware/internal/domain"
	"github.com/hanzong05/kitapos-middleware/internal/persistence"
	"github.com/hanzong05/kitapos-middleware/internal/repository"
	apperrors "github.com/hanzong05/kitapos-middleware/pkg/util"
)

const productCacheVersionKey = "catalog:products:ver"

// CatalogService manages categories and products. Product listings are
// cached in Redis under a namespace version; any catalog write bumps the
// version, which orphans every cached listing at once. Cache failures
// degrade to plain repository reads.
type CatalogService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	cache      *persistence.Redis
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewCatalogService builds the service. cache may be nil.
func NewCatalogService(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	cache *persistence.Redis,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		categories: categories,
		products:   products,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// --- categories ---

// ListCategories returns the categories visible to the identity.
func (s *CatalogService) ListCategories(ctx context.Context, identity *auth.Identity, override auth.Override) ([]domain.Category, error) {
	scope := auth.ResolveScope(identity, auth.ScopedByStore, override)
	return s.categories.List(ctx, scope)
}

// GetCategory fetches one category within scope.
func (s *CatalogService) GetCategory(ctx context.Context, identity *auth.Identity, id string) (*domain.Category, error) {
	scope := auth.ResolveScope(identity, auth.ScopedByStore, auth.Override{})
	category, err := s.categories.GetByID(ctx, id, scope)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category")
		}
		return nil, err
	}
	return category, nil
}

// CreateCategory adds a category under the caller's store scope.
func (s *CatalogService) CreateCategory(ctx context.Context, identity *auth.Identity, storeID, name string, description *string) (*domain.Category, error) {
	stamped, err := auth.EnforceStoreOwnership(identity, storeID)
	if err != nil {
		return nil, err
	}

	category := &domain.Category{StoreID: stamped, Name: name, Description: description}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory applies partial changes within scope.
func (s *CatalogService) UpdateCategory(ctx context.Context, identity *auth.Identity, id string, name *string, description *string) (*domain.Category, error) {
	category, err := s.GetCategory(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	if _, err := auth.EnforceStoreOwnership(identity, category.StoreID); err != nil {
		return nil, err
	}

	if name != nil {
		category.Name = *name
	}
	if description != nil {
		category.Description = description
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category within scope.
func (s *CatalogService) DeleteCategory(ctx context.Context, identity *auth.Identity, id string) error {
	scope := auth.ResolveScope(identity, auth.ScopedByStore, auth.Override{})
	if err := s.categories.Delete(ctx, id, scope); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("category")
		}
		return err
	}
	return nil
}

// --- products ---

// ListProducts returns the products visible to the identity, served from
// cache when possible.
func (s *CatalogService) ListProducts(ctx context.Context, identity *auth.Identity, override auth.Override, filter repository.ProductFilter) ([]domain.Product, error) {
	scope := auth.ResolveScope(identity, auth.ScopedByStore, override)

	key := s.productCacheKey(ctx, scope, filter)
	if key != "" {
		if cached, ok := s.cachedProducts(ctx, key); ok {
			return cached, nil
		}
	}

	products, err := s.products.List(ctx, scope, filter)
	if err != nil {
		return nil, err
	}

	if key != "" {
		s.storeProducts(ctx, key, products)
	}
	return products, nil
}

// GetProduct fetches one product within scope.
func (s *CatalogService) GetProduct(ctx context.Context, identity *auth.Identity, id string) (*domain.Product, error) {
	scope := auth.ResolveScope(identity, auth.ScopedByStore, auth.Override{})
	product, err := s.products.GetByID(ctx, id, scope)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product")
		}
		return nil, err
	}
	return product, nil
}

// CreateProductInput carries validated product-create fields.
type CreateProductInput struct {
	StoreID    string
	CategoryID *string
	SKU        string
	Name       string
	Price      float64
	Stock      int
}

// CreateProduct adds a product under the caller's store scope.
func (s *CatalogService) CreateProduct(ctx context.Context, identity *auth.Identity, in CreateProductInput) (*domain.Product, error) {
	storeID, err := auth.EnforceStoreOwnership(identity, in.StoreID)
	if err != nil {
		return nil, err
	}

	if _, err := s.products.GetBySKU(ctx, storeID, in.SKU); err == nil {
		return nil, apperrors.NewConflict("SKU_EXISTS", "sku already in use for this store")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	product := &domain.Product{
		StoreID:    storeID,
		CategoryID: in.CategoryID,
		SKU:        in.SKU,
		Name:       in.Name,
		Price:      in.Price,
		Stock:      in.Stock,
		Active:     true,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	s.InvalidateProductCache(ctx)
	return product, nil
}

// UpdateProductInput carries mutable product fields; nil means unchanged.
type UpdateProductInput struct {
	CategoryID *string
	Name       *string
	Price      *float64
	Active     *bool
}

// UpdateProduct applies partial changes within scope.
func (s *CatalogService) UpdateProduct(ctx context.Context, identity *auth.Identity, id string, in UpdateProductInput) (*domain.Product, error) {
	product, err := s.GetProduct(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	if _, err := auth.EnforceStoreOwnership(identity, product.StoreID); err != nil {
		return nil, err
	}

	if in.CategoryID != nil {
		product.CategoryID = in.CategoryID
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Active != nil {
		product.Active = *in.Active
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	s.InvalidateProductCache(ctx)
	return product, nil
}

// DeleteProduct removes a product within scope.
func (s *CatalogService) DeleteProduct(ctx context.Context, identity *auth.Identity, id string) error {
	scope := auth.ResolveScope(identity, auth.ScopedByStore, auth.Override{})
	if err := s.products.Delete(ctx, id, scope); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("product")
		}
		return err
	}
	s.InvalidateProductCache(ctx)
	return nil
}

// --- cache plumbing ---

func (s *CatalogService) cacheEnabled() bool {
	return s.cache != nil && s.cache.Client != nil && s.cacheTTL > 0
}

func (s *CatalogService) productCacheKey(ctx context.Context, scope auth.Scope, filter repository.ProductFilter) string {
	if !s.cacheEnabled() {
		return ""
	}
	ver, err := s.cache.Client.Get(ctx, productCacheVersionKey).Int64()
	if err != nil && !errors.Is(err, context.Canceled) {
		ver = 0
	}
	category := ""
	if filter.CategoryID != nil {
		category = *filter.CategoryID
	}
	return fmt.Sprintf("catalog:products:v%d:%d:%s:%s:%t:%d:%d",
		ver, scope.Kind, scope.ID, category, filter.ActiveOnly, filter.Limit, filter.Offset)
}

func (s *CatalogService) cachedProducts(ctx context.Context, key string) ([]domain.Product, bool) {
	raw, err := s.cache.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false
	}
	return products, true
}

func (s *CatalogService) storeProducts(ctx context.Context, key string, products []domain.Product) {
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("product cache set failed", zap.Error(err))
	}
}

// InvalidateProductCache bumps the cache namespace version, orphaning every
// cached product listing. Besides catalog writes, stock movements call this
// so listings never serve stale stock counts.
func (s *CatalogService) InvalidateProductCache(ctx context.Context) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.cache.Client.Incr(ctx, productCacheVersionKey).Err(); err != nil {
		s.logger.Debug("product cache invalidation failed", zap.Error(err))
	}
}
