package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/hanzong05/kitapos-middleware/internal/auth"
	"github.com/hanzong05/kitapos-middleware/internal/domain"
	"github.com/hanzong05/kitapos-middleware/internal/persistence"
)

// StaffRepository encapsulates staff roster persistence.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.StaffMember) error
	Update(ctx context.Context, staff *domain.StaffMember) error
	Delete(ctx context.Context, id string, scope auth.Scope) error
	GetByID(ctx context.Context, id string, scope auth.Scope) (*domain.StaffMember, error)
	List(ctx context.Context, scope auth.Scope) ([]domain.StaffMember, error)
}

type staffRepository struct {
	pg *persistence.Postgres
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pg *persistence.Postgres) StaffRepository {
	return &staffRepository{pg: pg}
}

var staffScopeCols = scopeColumns{Store: "store_id"}

const staffColumns = `id, store_id, user_id, name, email, role, active, created_at, updated_at`

func (r *staffRepository) Create(ctx context.Context, staff *domain.StaffMember) error {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO staff (store_id, user_id, name, email, role, active)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`
	return pool.QueryRow(ctx, query,
		staff.StoreID,
		staff.UserID,
		staff.Name,
		staff.Email,
		staff.Role,
		staff.Active,
	).Scan(&staff.ID, &staff.CreatedAt, &staff.UpdatedAt)
}

func (r *staffRepository) Update(ctx context.Context, staff *domain.StaffMember) error {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return err
	}

	const query = `
        UPDATE staff SET name=$1, email=$2, role=$3, active=$4, updated_at=NOW()
        WHERE id=$5 AND store_id=$6`
	cmd, err := pool.Exec(ctx, query,
		staff.Name,
		staff.Email,
		staff.Role,
		staff.Active,
		staff.ID,
		staff.StoreID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepository) Delete(ctx context.Context, id string, scope auth.Scope) error {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return err
	}

	clause, args := scopeClause(scope, staffScopeCols, 2)
	cmd, err := pool.Exec(ctx, `DELETE FROM staff WHERE id=$1 AND `+clause, append([]any{id}, args...)...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepository) GetByID(ctx context.Context, id string, scope auth.Scope) (*domain.StaffMember, error) {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return nil, err
	}

	clause, args := scopeClause(scope, staffScopeCols, 2)
	query := `SELECT ` + staffColumns + ` FROM staff WHERE id=$1 AND ` + clause

	var staff domain.StaffMember
	if err := scanStaff(pool.QueryRow(ctx, query, append([]any{id}, args...)...), &staff); err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) List(ctx context.Context, scope auth.Scope) ([]domain.StaffMember, error) {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return nil, err
	}

	clause, args := scopeClause(scope, staffScopeCols, 1)
	query := `SELECT ` + staffColumns + ` FROM staff WHERE ` + clause + ` ORDER BY name`

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.StaffMember
	for rows.Next() {
		var staff domain.StaffMember
		if err := scanStaff(rows, &staff); err != nil {
			return nil, err
		}
		members = append(members, staff)
	}
	return members, rows.Err()
}

func scanStaff(row pgx.Row, staff *domain.StaffMember) error {
	return row.Scan(
		&staff.ID,
		&staff.StoreID,
		&staff.UserID,
		&staff.Name,
		&staff.Email,
		&staff.Role,
		&staff.Active,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	)
}
