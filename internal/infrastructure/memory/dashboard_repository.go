package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo agregaciones calculadas recorriendo las ventas en memoria.
type DashboardRepo struct {
	s *Store
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(s *Store) *DashboardRepo {
	return &DashboardRepo{s: s}
}

func (r *DashboardRepo) PeriodTotals(_ context.Context, q repository.DashboardQuery) (repository.PeriodTotals, error) {
	return totals(r.sales(q, true, "")), nil
}

func (r *DashboardRepo) Ranking(_ context.Context, q repository.DashboardQuery, limit int) ([]repository.RepRanking, error) {
	byRep := map[string]*repository.RepRanking{}
	for _, sale := range r.sales(q, true, "") {
		row, ok := byRep[sale.SalesRepID]
		if !ok {
			row = &repository.RepRanking{RepID: sale.SalesRepID, RepName: sale.RepName}
			byRep[sale.SalesRepID] = row
		}
		row.TotalAmount = row.TotalAmount.Add(sale.Amount)
		row.Count++
	}
	out := make([]repository.RepRanking, 0, len(byRep))
	for _, row := range byRep {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].TotalAmount.Cmp(out[j].TotalAmount); c != 0 {
			return c > 0
		}
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].RepID < out[j].RepID
	})
	return head(out, limit), nil
}

func (r *DashboardRepo) TopSales(_ context.Context, q repository.DashboardQuery, limit int) ([]*entity.Sale, error) {
	sales := r.sales(q, false, "")
	sortBy(sales, func(a, b *entity.Sale) bool {
		if c := a.Amount.Cmp(b.Amount); c != 0 {
			return c > 0
		}
		return newestFirst(a, b)
	})
	return head(sales, limit), nil
}

func (r *DashboardRepo) RecentSales(_ context.Context, q repository.DashboardQuery, limit int) ([]*entity.Sale, error) {
	sales := r.sales(q, false, "")
	sortBy(sales, newestFirst)
	return head(sales, limit), nil
}

func (r *DashboardRepo) MonthlyHistory(_ context.Context, q repository.DashboardQuery, repID string) ([]repository.MonthlyTotals, error) {
	loc := q.Location
	if loc == nil {
		loc = time.UTC
	}
	byMonth := map[string]*repository.MonthlyTotals{}
	for _, sale := range r.sales(q, false, repID) {
		period := sale.CreatedAt.In(loc).Format("2006-01")
		row, ok := byMonth[period]
		if !ok {
			row = &repository.MonthlyTotals{Period: period}
			byMonth[period] = row
		}
		row.AmountSum = row.AmountSum.Add(sale.Amount)
		row.CommissionSum = row.CommissionSum.Add(sale.Commission)
	}
	out := make([]repository.MonthlyTotals, 0, len(byMonth))
	for _, row := range byMonth {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period > out[j].Period })
	return out, nil
}

func (r *DashboardRepo) RepTotals(_ context.Context, q repository.DashboardQuery, repID string) (repository.PeriodTotals, error) {
	return totals(r.sales(q, false, repID)), nil
}

// sales filtra por empresa y estado; inPeriod aplica [From, To) y repID, si no es vacío, el vendedor.
func (r *DashboardRepo) sales(q repository.DashboardQuery, inPeriod bool, repID string) []*entity.Sale {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*entity.Sale{}
	for _, sale := range r.s.sales {
		if sale.TenantID != q.TenantID || sale.Status != q.Status {
			continue
		}
		if repID != "" && sale.SalesRepID != repID {
			continue
		}
		if inPeriod && (sale.CreatedAt.Before(q.From) || !sale.CreatedAt.Before(q.To)) {
			continue
		}
		out = append(out, r.s.resolveSale(sale))
	}
	return out
}

func totals(sales []*entity.Sale) repository.PeriodTotals {
	t := repository.PeriodTotals{TotalAmount: decimal.Zero, TotalCommission: decimal.Zero}
	for _, sale := range sales {
		t.TotalAmount = t.TotalAmount.Add(sale.Amount)
		t.TotalCommission = t.TotalCommission.Add(sale.Commission)
		t.Count++
	}
	return t
}

func head[T any](items []T, limit int) []T {
	if limit >= 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
