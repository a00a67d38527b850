package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas sobre PostgreSQL. Toda consulta filtra por tenant_id.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleSelect = `
	SELECT s.id, s.tenant_id, s.sales_rep_id, p.name, s.amount, s.commission, s.description, s.status, s.created_at
	FROM sales s
	JOIN sales_reps r ON r.id = s.sales_rep_id
	JOIN principals p ON p.id = r.principal_id`

// Create inserta la venta solo si el vendedor pertenece a la misma empresa.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, tenant_id, sales_rep_id, amount, commission, description, status, created_at)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8
		WHERE EXISTS (SELECT 1 FROM sales_reps WHERE id = $3 AND tenant_id = $2)`
	tag, err := r.q.Exec(ctx, query,
		sale.ID, sale.TenantID, sale.SalesRepID, sale.Amount, sale.Commission,
		sale.Description, string(sale.Status), sale.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert sale: %w", domain.ErrInvalidInput)
		}
		return wrapErr("insert sale", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("insert sale: vendedor %s: %w", sale.SalesRepID, domain.ErrInvalidInput)
	}
	return nil
}

func (r *SaleRepo) GetByTenantAndID(ctx context.Context, tenantID, id string) (*entity.Sale, error) {
	return r.get(ctx, saleSelect+` WHERE s.tenant_id = $1 AND s.id = $2`, tenantID, id)
}

func (r *SaleRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Sale, error) {
	return r.get(ctx, saleSelect+` WHERE s.tenant_id = $1 AND s.id = $2 FOR UPDATE OF s`, tenantID, id)
}

func (r *SaleRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.Sale, error) {
	return r.list(ctx, saleSelect+` WHERE s.tenant_id = $1 ORDER BY s.created_at DESC, s.id`, tenantID)
}

func (r *SaleRepo) ListByRep(ctx context.Context, repID string) ([]*entity.Sale, error) {
	return r.list(ctx, saleSelect+` WHERE s.sales_rep_id = $1 ORDER BY s.created_at DESC, s.id`, repID)
}

func (r *SaleRepo) UpdateAmount(ctx context.Context, sale *entity.Sale) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE sales SET amount = $3, commission = $4, description = $5
		WHERE tenant_id = $1 AND id = $2`,
		sale.TenantID, sale.ID, sale.Amount, sale.Commission, sale.Description)
	if err != nil {
		return wrapErr("update sale", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CompareAndSetStatus UPDATE condicionado al estado actual: dos transiciones concurrentes
// sobre la misma venta no pueden ganar ambas.
func (r *SaleRepo) CompareAndSetStatus(ctx context.Context, tenantID, id string, from []entity.SaleStatus, to entity.SaleStatus) (bool, error) {
	sources := make([]string, len(from))
	for i, s := range from {
		sources[i] = string(s)
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE sales SET status = $3
		WHERE tenant_id = $1 AND id = $2 AND status = ANY($4)`,
		tenantID, id, string(to), sources)
	if err != nil {
		return false, wrapErr("update sale status", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *SaleRepo) get(ctx context.Context, query string, args ...any) (*entity.Sale, error) {
	sale, err := scanSale(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapErr("get sale", err)
	}
	return sale, nil
}

func (r *SaleRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list sales", err)
	}
	return collectSales(rows)
}

func scanSale(row rowScanner) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.TenantID, &s.SalesRepID, &s.RepName, &s.Amount, &s.Commission, &s.Description, &s.Status, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func collectSales(rows pgx.Rows) ([]*entity.Sale, error) {
	defer rows.Close()
	out := []*entity.Sale{}
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
