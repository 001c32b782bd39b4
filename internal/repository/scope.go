package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hanzong05/kitapos-middleware/internal/auth"
	"github.com/hanzong05/kitapos-middleware/internal/persistence"
	apperrors "github.com/hanzong05/kitapos-middleware/pkg/util"
)

// scopeColumns names the tenancy columns of a table so a Scope predicate can
// be rendered against it.
type scopeColumns struct {
	Company string
	Store   string
}

// scopeClause translates a Scope predicate into a SQL condition. argIdx is
// the positional index the appended argument should use. ScopeNone renders a
// condition matching no rows, so an unaffiliated identity reads an empty set.
func scopeClause(s auth.Scope, cols scopeColumns, argIdx int) (string, []any) {
	switch s.Kind {
	case auth.ScopeUnrestricted:
		return "TRUE", nil
	case auth.ScopeCompany:
		if cols.Company == "" {
			return "FALSE", nil
		}
		return fmt.Sprintf("%s = $%d", cols.Company, argIdx), []any{s.ID}
	case auth.ScopeStore:
		if cols.Store == "" {
			return "FALSE", nil
		}
		return fmt.Sprintf("%s = $%d", cols.Store, argIdx), []any{s.ID}
	default:
		return "FALSE", nil
	}
}

// acquirePool fetches the lazily-initialized pool, mapping initialization
// failure to the retry-safe 503 the handlers expose.
func acquirePool(ctx context.Context, pg *persistence.Postgres) (*pgxpool.Pool, error) {
	pool, err := pg.Pool(ctx)
	if err != nil {
		return nil, apperrors.NewUnavailable("database unavailable", err)
	}
	return pool, nil
}
