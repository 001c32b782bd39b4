package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/hanzong05/kitapos-middleware/internal/auth"
	"github.com/hanzong05/kitapos-middleware/internal/domain"
	"github.com/hanzong05/kitapos-middleware/internal/persistence"
)

// CompanyRepository encapsulates company persistence. Reads take the caller's
// Scope; a company row's own id is its company column.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	Update(ctx context.Context, company *domain.Company) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string, scope auth.Scope) (*domain.Company, error)
	List(ctx context.Context, scope auth.Scope) ([]domain.Company, error)
}

type companyRepository struct {
	pg *persistence.Postgres
}

// NewCompanyRepository instantiates the repository.
func NewCompanyRepository(pg *persistence.Postgres) CompanyRepository {
	return &companyRepository{pg: pg}
}

var companyScopeCols = scopeColumns{Company: "id"}

func (r *companyRepository) Create(ctx context.Context, company *domain.Company) error {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO companies (name, tax_id, address)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`
	return pool.QueryRow(ctx, query,
		company.Name,
		company.TaxID,
		company.Address,
	).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)
}

func (r *companyRepository) Update(ctx context.Context, company *domain.Company) error {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return err
	}

	const query = `
        UPDATE companies SET name=$1, tax_id=$2, address=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := pool.Exec(ctx, query, company.Name, company.TaxID, company.Address, company.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *companyRepository) Delete(ctx context.Context, id string) error {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return err
	}

	cmd, err := pool.Exec(ctx, `DELETE FROM companies WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *companyRepository) GetByID(ctx context.Context, id string, scope auth.Scope) (*domain.Company, error) {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return nil, err
	}

	clause, args := scopeClause(scope, companyScopeCols, 2)
	query := `SELECT id, name, tax_id, address, created_at, updated_at FROM companies WHERE id=$1 AND ` + clause

	var company domain.Company
	if err := pool.QueryRow(ctx, query, append([]any{id}, args...)...).Scan(
		&company.ID,
		&company.Name,
		&company.TaxID,
		&company.Address,
		&company.CreatedAt,
		&company.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) List(ctx context.Context, scope auth.Scope) ([]domain.Company, error) {
	pool, err := acquirePool(ctx, r.pg)
	if err != nil {
		return nil, err
	}

	clause, args := scopeClause(scope, companyScopeCols, 1)
	query := `SELECT id, name, tax_id, address, created_at, updated_at FROM companies WHERE ` + clause + ` ORDER BY name`

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		var company domain.Company
		if err := rows.Scan(
			&company.ID,
			&company.Name,
			&company.TaxID,
			&company.Address,
			&company.CreatedAt,
			&company.UpdatedAt,
		); err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
}
