package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/hanzong05/kitapos-middleware/internal/auth"
	"github.com/hanzong05/kitapos-middleware/internal/domain"
	"github.com/hanzong05/kitapos-middleware/internal/persistence"
)

// StoreRepository encapsulates store persistence.
type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) error
	Update(ctx context.Context, store *domain.Store) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string, scope auth.Scope) (*domain.Store, error)
	List(ctx context.Context, scope auth.Scope) ([]domain.Store, error)
}

type storeRepository struct {
	pg *persistence.Postgres
}

// NewStoreRepository instantiates the repository.
func NewStoreRepository(pg *persistence.Postgres) StoreRepository {
	return &storeRepository{pg: pg}
}

// A store row is company-scoped via company_id; a store-level scope matches
// the row's own id.
var storeScopeCols = scopeColumns{Company: "company_id", Store: "id"}

const storeColumns = `id, company_id, name, address, active, created_at, updated_at`

func (r *storeRepository) Create(ctx context.Context, store *domain.Store) error {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO stores (company_id, name, address, active)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`
	return pool.QueryRow(ctx, query,
		store.CompanyID,
		store.Name,
		store.Address,
		store.Active,
	).Scan(&store.ID, &store.CreatedAt, &store.UpdatedAt)
}

func (r *storeRepository) Update(ctx context.Context, store *domain.Store) error {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return err
	}

	const query = `
        UPDATE stores SET name=$1, address=$2, active=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := pool.Exec(ctx, query, store.Name, store.Address, store.Active, store.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *storeRepository) Delete(ctx context.Context, id string) error {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return err
	}

	cmd, err := pool.Exec(ctx, `DELETE FROM stores WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *storeRepository) GetByID(ctx context.Context, id string, scope auth.Scope) (*domain.Store, error) {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return nil, err
	}

	clause, args := scopeClause(scope, storeScopeCols, 2)
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id=$1 AND ` + clause

	var store domain.Store
	if err := scanStore(pool.QueryRow(ctx, query, append([]any{id}, args...)...), &store); err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) List(ctx context.Context, scope auth.Scope) ([]domain.Store, error) {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return nil, err
	}

	clause, args := scopeClause(scope, storeScopeCols, 1)
	query := `SELECT ` + storeColumns + ` FROM stores WHERE ` + clause + ` ORDER BY name`

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		var store domain.Store
		if err := scanStore(rows, &store); err != nil {
			return nil, err
		}
		stores = append(stores, store)
	}
	return stores, rows.Err()
}

func scanStore(row pgx.Row, store *domain.Store) error {
	return row.Scan(
		&store.ID,
		&store.CompanyID,
		&store.Name,
		&store.Address,
		&store.Active,
		&store.CreatedAt,
		&store.UpdatedAt,
	)
}
