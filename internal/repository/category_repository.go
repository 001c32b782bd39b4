package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/hanzong05/kitapos-middleware/internal/auth"
	"github.com/hanzong05/kitapos-middleware/internal/domain"
	"github.com/hanzong05/kitapos-middleware/internal/persistence"
)

// CategoryRepository encapsulates category persistence.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string, scope auth.Scope) error
	GetByID(ctx context.Context, id string, scope auth.Scope) (*domain.Category, error)
	List(ctx context.Context, scope auth.Scope) ([]domain.Category, error)
}

type categoryRepository struct {
	pg *persistence.Postgres
}

// NewCategoryRepository instantiates the repository.
func NewCategoryRepository(pg *persistence.Postgres) CategoryRepository {
	return &categoryRepository{pg: pg}
}

var categoryScopeCols = scopeColumns{Store: "store_id"}

const categoryColumns = `id, store_id, name, description, created_at, updated_at`

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO categories (store_id, name, description)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`
	return pool.QueryRow(ctx, query,
		category.StoreID,
		category.Name,
		category.Description,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return err
	}

	const query = `
        UPDATE categories SET name=$1, description=$2, updated_at=NOW()
        WHERE id=$3 AND store_id=$4`
	cmd, err := pool.Exec(ctx, query,
		category.Name,
		category.Description,
		category.ID,
		category.StoreID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string, scope auth.Scope) error {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return err
	}

	clause, args := scopeClause(scope, categoryScopeCols, 2)
	cmd, err := pool.Exec(ctx, `DELETE FROM categories WHERE id=$1 AND `+clause, append([]any{id}, args...)...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string, scope auth.Scope) (*domain.Category, error) {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return nil, err
	}

	clause, args := scopeClause(scope, categoryScopeCols, 2)
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id=$1 AND ` + clause

	var category domain.Category
	if err := scanCategory(pool.QueryRow(ctx, query, append([]any{id}, args...)...), &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context, scope auth.Scope) ([]domain.Category, error) {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return nil, err
	}

	clause, args := scopeClause(scope, categoryScopeCols, 1)
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE ` + clause + ` ORDER BY name`

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := scanCategory(rows, &category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func scanCategory(row pgx.Row, category *domain.Category) error {
	return row.Scan(
		&category.ID,
		&category.StoreID,
		&category.Name,
		&category.Description,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
}
