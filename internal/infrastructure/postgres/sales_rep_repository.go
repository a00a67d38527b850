package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
)

var _ repository.SalesRepRepository = (*SalesRepRepo)(nil)

// SalesRepRepo vendedores sobre PostgreSQL. Nombre y email salen del join con principals.
type SalesRepRepo struct {
	q Querier
}

// NewSalesRepRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesRepRepository(q Querier) *SalesRepRepo {
	return &SalesRepRepo{q: q}
}

const salesRepSelect = `
	SELECT r.id, r.tenant_id, r.principal_id, r.commission_percentage, p.name, p.email, r.created_at
	FROM sales_reps r
	JOIN principals p ON p.id = r.principal_id`

func (r *SalesRepRepo) Create(ctx context.Context, rep *entity.SalesRep) error {
	query := `
		INSERT INTO sales_reps (id, tenant_id, principal_id, commission_percentage, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, rep.ID, rep.TenantID, rep.PrincipalID, rep.CommissionPercentage, rep.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert sales rep: %w", domain.ErrConflict)
		}
		return wrapErr("insert sales rep", err)
	}
	return nil
}

func (r *SalesRepRepo) GetByTenantAndID(ctx context.Context, tenantID, id string) (*entity.SalesRep, error) {
	return r.get(ctx, salesRepSelect+` WHERE r.tenant_id = $1 AND r.id = $2`, tenantID, id)
}

func (r *SalesRepRepo) GetByPrincipalID(ctx context.Context, principalID string) (*entity.SalesRep, error) {
	return r.get(ctx, salesRepSelect+` WHERE r.principal_id = $1`, principalID)
}

func (r *SalesRepRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.SalesRep, error) {
	rows, err := r.q.Query(ctx, salesRepSelect+` WHERE r.tenant_id = $1 ORDER BY p.name`, tenantID)
	if err != nil {
		return nil, wrapErr("list sales reps", err)
	}
	defer rows.Close()
	out := []*entity.SalesRep{}
	for rows.Next() {
		rep, err := scanSalesRep(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sales rep: %w", err)
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (r *SalesRepRepo) UpdatePercentage(ctx context.Context, tenantID, id string, percentage decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE sales_reps SET commission_percentage = $3 WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, percentage)
	if err != nil {
		return wrapErr("update commission percentage", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SalesRepRepo) get(ctx context.Context, query string, args ...any) (*entity.SalesRep, error) {
	rep, err := scanSalesRep(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapErr("get sales rep", err)
	}
	return rep, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSalesRep(row rowScanner) (*entity.SalesRep, error) {
	var rep entity.SalesRep
	var pct decimal.NullDecimal
	if err := row.Scan(&rep.ID, &rep.TenantID, &rep.PrincipalID, &pct, &rep.Name, &rep.Email, &rep.CreatedAt); err != nil {
		return nil, err
	}
	if pct.Valid {
		rep.CommissionPercentage = &pct.Decimal
	}
	return &rep, nil
}
