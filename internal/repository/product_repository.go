package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hanzong05/kitapos-middleware/internal/auth"
	"github.com/hanzong05/kitapos-middleware/internal/domain"
	"github.com/hanzong05/kitapos-middleware/internal/persistence"
)

// ProductFilter captures listing parameters beyond the scope predicate.
type ProductFilter struct {
	CategoryID *string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ProductRepository encapsulates product persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string, scope auth.Scope) error
	GetByID(ctx context.Context, id string, scope auth.Scope) (*domain.Product, error)
	GetBySKU(ctx context.Context, storeID, sku string) (*domain.Product, error)
	List(ctx context.Context, scope auth.Scope, filter ProductFilter) ([]domain.Product, error)
}

type productRepository struct {
	pg *persistence.Postgres
}

// NewProductRepository instantiates the repository.
func NewProductRepository(pg *persistence.Postgres) ProductRepository {
	return &productRepository{pg: pg}
}

var productScopeCols = scopeColumns{Store: "store_id"}

const productColumns = `id, store_id, category_id, sku, name, price, stock, active, created_at, updated_at`

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO products (store_id, category_id, sku, name, price, stock, active)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`
	return pool.QueryRow(ctx, query,
		product.StoreID,
		product.CategoryID,
		product.SKU,
		product.Name,
		product.Price,
		product.Stock,
		product.Active,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return err
	}

	const query = `
        UPDATE products SET category_id=$1, sku=$2, name=$3, price=$4, active=$5, updated_at=NOW()
        WHERE id=$6 AND store_id=$7`
	cmd, err := pool.Exec(ctx, query,
		product.CategoryID,
		product.SKU,
		product.Name,
		product.Price,
		product.Active,
		product.ID,
		product.StoreID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string, scope auth.Scope) error {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return err
	}

	clause, args := scopeClause(scope, productScopeCols, 2)
	cmd, err := pool.Exec(ctx, `DELETE FROM products WHERE id=$1 AND `+clause, append([]any{id}, args...)...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string, scope auth.Scope) (*domain.Product, error) {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return nil, err
	}

	clause, args := scopeClause(scope, productScopeCols, 2)
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1 AND ` + clause

	var product domain.Product
	if err := scanProduct(pool.QueryRow(ctx, query, append([]any{id}, args...)...), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetBySKU(ctx context.Context, storeID, sku string) (*domain.Product, error) {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return nil, err
	}

	const query = `SELECT ` + productColumns + ` FROM products WHERE store_id=$1 AND sku=$2`

	var product domain.Product
	if err := scanProduct(pool.QueryRow(ctx, query, storeID, sku), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, scope auth.Scope, filter ProductFilter) ([]domain.Product, error) {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return nil, err
	}

	clause, args := scopeClause(scope, productScopeCols, 1)
	conditions := []string{clause}
	idx := len(args) + 1

	if filter.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", idx))
		args = append(args, *filter.CategoryID)
		idx++
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "active")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE `
	for i, cond := range conditions {
		if i > 0 {
			query += " AND "
		}
		query += cond
	}
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, filter.Offset)

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var product domain.Product
		if err := scanProduct(rows, &product); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func scanProduct(row pgx.Row, product *domain.Product) error {
	return row.Scan(
		&product.ID,
		&product.StoreID,
		&product.CategoryID,
		&product.SKU,
		&product.Name,
		&product.Price,
		&product.Stock,
		&product.Active,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
}
