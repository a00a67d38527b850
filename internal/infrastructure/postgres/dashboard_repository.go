package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el dashboard de comisiones.
// Todas filtran por empresa y estado; ninguna cruza empresas.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador de analítica.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// PeriodTotals suma de monto y comisión y cantidad en [From, To).
func (r *DashboardRepo) PeriodTotals(ctx context.Context, q repository.DashboardQuery) (repository.PeriodTotals, error) {
	const query = `
	SELECT COALESCE(SUM(amount), 0), COALESCE(SUM(commission), 0), COUNT(*)
	FROM sales
	WHERE tenant_id = $1 AND status = $2
	  AND created_at >= $3 AND created_at < $4`

	var t repository.PeriodTotals
	err := r.pool.QueryRow(ctx, query, q.TenantID, string(q.Status), q.From, q.To).
		Scan(&t.TotalAmount, &t.TotalCommission, &t.Count)
	if err != nil {
		return repository.PeriodTotals{}, fmt.Errorf("period totals: %w", err)
	}
	return t, nil
}

// Ranking vendedores del período por monto y cantidad descendentes; r.id desempata.
func (r *DashboardRepo) Ranking(ctx context.Context, q repository.DashboardQuery, limit int) ([]repository.RepRanking, error) {
	const query = `
	SELECT
	    s.sales_rep_id,
	    p.name,
	    SUM(s.amount) AS total,
	    COUNT(*)      AS cnt
	FROM sales s
	JOIN sales_reps r ON r.id = s.sales_rep_id
	JOIN principals p ON p.id = r.principal_id
	WHERE s.tenant_id = $1 AND s.status = $2
	  AND s.created_at >= $3 AND s.created_at < $4
	GROUP BY s.sales_rep_id, p.name
	ORDER BY total DESC, cnt DESC, s.sales_rep_id
	LIMIT $5`

	rows, err := r.pool.Query(ctx, query, q.TenantID, string(q.Status), q.From, q.To, limit)
	if err != nil {
		return nil, fmt.Errorf("ranking: %w", err)
	}
	defer rows.Close()

	out := []repository.RepRanking{}
	for rows.Next() {
		var row repository.RepRanking
		if err := rows.Scan(&row.RepID, &row.RepName, &row.TotalAmount, &row.Count); err != nil {
			return nil, fmt.Errorf("scan ranking: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// TopSales ventas de mayor monto de todo el histórico.
func (r *DashboardRepo) TopSales(ctx context.Context, q repository.DashboardQuery, limit int) ([]*entity.Sale, error) {
	rows, err := r.pool.Query(ctx,
		saleSelect+` WHERE s.tenant_id = $1 AND s.status = $2
		ORDER BY s.amount DESC, s.created_at DESC, s.id LIMIT $3`,
		q.TenantID, string(q.Status), limit)
	if err != nil {
		return nil, fmt.Errorf("top sales: %w", err)
	}
	return collectSales(rows)
}

// RecentSales ventas más recientes de todo el histórico.
func (r *DashboardRepo) RecentSales(ctx context.Context, q repository.DashboardQuery, limit int) ([]*entity.Sale, error) {
	rows, err := r.pool.Query(ctx,
		saleSelect+` WHERE s.tenant_id = $1 AND s.status = $2
		ORDER BY s.created_at DESC, s.id LIMIT $3`,
		q.TenantID, string(q.Status), limit)
	if err != nil {
		return nil, fmt.Errorf("recent sales: %w", err)
	}
	return collectSales(rows)
}

// MonthlyHistory agrupa por mes calendario en la zona horaria de q.Location.
func (r *DashboardRepo) MonthlyHistory(ctx context.Context, q repository.DashboardQuery, repID string) ([]repository.MonthlyTotals, error) {
	const query = `
	SELECT
	    to_char(date_trunc('month', created_at AT TIME ZONE $3), 'YYYY-MM') AS period,
	    SUM(amount),
	    SUM(commission)
	FROM sales
	WHERE tenant_id = $1 AND status = $2
	  AND ($4 = '' OR sales_rep_id::text = $4)
	GROUP BY period
	ORDER BY period DESC`

	rows, err := r.pool.Query(ctx, query, q.TenantID, string(q.Status), locationName(q), repID)
	if err != nil {
		return nil, fmt.Errorf("monthly history: %w", err)
	}
	defer rows.Close()

	out := []repository.MonthlyTotals{}
	for rows.Next() {
		var row repository.MonthlyTotals
		if err := rows.Scan(&row.Period, &row.AmountSum, &row.CommissionSum); err != nil {
			return nil, fmt.Errorf("scan monthly history: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// RepTotals totales históricos de un vendedor.
func (r *DashboardRepo) RepTotals(ctx context.Context, q repository.DashboardQuery, repID string) (repository.PeriodTotals, error) {
	const query = `
	SELECT COALESCE(SUM(amount), 0), COALESCE(SUM(commission), 0), COUNT(*)
	FROM sales
	WHERE tenant_id = $1 AND status = $2 AND sales_rep_id = $3`

	var t repository.PeriodTotals
	if err := r.pool.QueryRow(ctx, query, q.TenantID, string(q.Status), repID).
		Scan(&t.TotalAmount, &t.TotalCommission, &t.Count); err != nil {
		return repository.PeriodTotals{}, fmt.Errorf("rep totals: %w", err)
	}
	return t, nil
}

func locationName(q repository.DashboardQuery) string {
	if q.Location == nil {
		return "UTC"
	}
	return q.Location.String()
}
