package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hanzong05/kitapos-middleware/internal/auth"
	"github.com/hanzong05/kitapos-middleware/internal/domain"
	"github.com/hanzong05/kitapos-middleware/internal/persistence"
)

// ErrInsufficientStock is returned when a movement would drive stock negative.
var ErrInsufficientStock = errors.New("insufficient stock")

// MovementFilter captures listing parameters beyond the scope predicate.
type MovementFilter struct {
	ProductID *string
	Limit     int
	Offset    int
}

// InventoryRepository persists stock movements. Record applies the movement
// and the product stock change in one transaction.
type InventoryRepository interface {
	Record(ctx context.Context, movement *domain.InventoryMovement) (newStock int, err error)
	GetByID(ctx context.Context, id string, scope auth.Scope) (*domain.InventoryMovement, error)
	List(ctx context.Context, scope auth.Scope, filter MovementFilter) ([]domain.InventoryMovement, error)
}

type inventoryRepository struct {
	pg *persistence.Postgres
}

// NewInventoryRepository instantiates the repository.
func NewInventoryRepository(pg *persistence.Postgres) InventoryRepository {
	return &inventoryRepository{pg: pg}
}

var movementScopeCols = scopeColumns{Store: "store_id"}

const movementColumns = `id, store_id, product_id, kind, quantity, note, created_by, created_at`

func (r *inventoryRepository) Record(ctx context.Context, movement *domain.InventoryMovement) (int, error) {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return 0, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	delta := movement.Kind.Delta(movement.Quantity)

	// The stock guard rides on the same UPDATE: a no-op means the product is
	// either absent from the store or would go negative. Callers verify
	// existence beforehand, so a miss here is the stock guard firing.
	var newStock int
	err = tx.QueryRow(ctx, `
        UPDATE products SET stock = stock + $1, updated_at=NOW()
        WHERE id=$2 AND store_id=$3 AND stock + $1 >= 0
        RETURNING stock`,
		delta, movement.ProductID, movement.StoreID,
	).Scan(&newStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrInsufficientStock
		}
		return 0, err
	}

	err = tx.QueryRow(ctx, `
        INSERT INTO inventory_movements (store_id, product_id, kind, quantity, note, created_by)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`,
		movement.StoreID,
		movement.ProductID,
		movement.Kind,
		movement.Quantity,
		movement.Note,
		movement.CreatedBy,
	).Scan(&movement.ID, &movement.CreatedAt)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newStock, nil
}

func (r *inventoryRepository) GetByID(ctx context.Context, id string, scope auth.Scope) (*domain.InventoryMovement, error) {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return nil, err
	}

	clause, args := scopeClause(scope, movementScopeCols, 2)
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE id=$1 AND ` + clause

	var movement domain.InventoryMovement
	if err := scanMovement(pool.QueryRow(ctx, query, append([]any{id}, args...)...), &movement); err != nil {
		return nil, err
	}
	return &movement, nil
}

func (r *inventoryRepository) List(ctx context.Context, scope auth.Scope, filter MovementFilter) ([]domain.InventoryMovement, error) {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return nil, err
	}

	clause, args := scopeClause(scope, movementScopeCols, 1)
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE ` + clause
	idx := len(args) + 1

	if filter.ProductID != nil {
		query += fmt.Sprintf(" AND product_id = $%d", idx)
		args = append(args, *filter.ProductID)
		idx++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, filter.Offset)

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []domain.InventoryMovement
	for rows.Next() {
		var movement domain.InventoryMovement
		if err := scanMovement(rows, &movement); err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}
	return movements, rows.Err()
}

func scanMovement(row pgx.Row, movement *domain.InventoryMovement) error {
	return row.Scan(
		&movement.ID,
		&movement.StoreID,
		&movement.ProductID,
		&movement.Kind,
		&movement.Quantity,
		&movement.Note,
		&movement.CreatedBy,
		&movement.CreatedAt,
	)
}
