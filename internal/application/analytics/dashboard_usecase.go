// Package analytics contiene el dashboard de comisiones de una empresa.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/comisiones-api/internal/application/dto"
	"github.com/jhoicas/comisiones-api/internal/application/tenancy"
	"github.com/jhoicas/comisiones-api/internal/domain/commission"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
	"github.com/jhoicas/comisiones-api/pkg/clock"
)

// DefaultTopN tamaño del ranking y de las listas de mayores/últimas ventas.
const DefaultTopN = 5

// countedStatus solo las ventas confirmadas cuentan para totales, ranking e histórico.
const countedStatus = entity.SaleStatusConfirmed

// DashboardUseCase arma el DashboardResponse de la empresa del llamador.
//
// Fuente de datos: DashboardRepository (consultas read-only).
type DashboardUseCase struct {
	repo  repository.DashboardRepository
	loc   *time.Location
	topN  int
	clock clock.Clock
}

// NewDashboardUseCase construye el caso de uso. loc define el mes calendario en curso.
func NewDashboardUseCase(repo repository.DashboardRepository, loc *time.Location, topN int, clk clock.Clock) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &DashboardUseCase{repo: repo, loc: loc, topN: topN, clock: clk}
}

// CurrentPeriod mes calendario de now en loc como intervalo [from, to).
func CurrentPeriod(now time.Time, loc *time.Location) (from, to time.Time) {
	local := now.In(loc)
	from = time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 1, 0)
}

// GetDashboard ejecuta las cinco consultas en paralelo con un único "now".
//  1. PeriodTotals(mes)   → Current
//  2. Ranking(mes, topN)  → Ranking
//  3. TopSales(topN)      → TopSales
//  4. RecentSales(topN)   → RecentSales
//  5. MonthlyHistory      → History
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, caller *tenancy.Caller) (*dto.DashboardResponse, error) {
	tenantID, err := caller.TenantID()
	if err != nil {
		return nil, err
	}
	from, to := CurrentPeriod(uc.clock.Now(), uc.loc)
	q := repository.DashboardQuery{TenantID: tenantID, Status: countedStatus, From: from, To: to, Location: uc.loc}

	var (
		totals  repository.PeriodTotals
		ranking []repository.RepRanking
		top     []*entity.Sale
		recent  []*entity.Sale
		history []repository.MonthlyTotals
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totals, err = uc.repo.PeriodTotals(gctx, q)
		return wrap("totales del mes", err)
	})
	g.Go(func() (err error) {
		ranking, err = uc.repo.Ranking(gctx, q, uc.topN)
		return wrap("ranking", err)
	})
	g.Go(func() (err error) {
		top, err = uc.repo.TopSales(gctx, q, uc.topN)
		return wrap("mayores ventas", err)
	})
	g.Go(func() (err error) {
		recent, err = uc.repo.RecentSales(gctx, q, uc.topN)
		return wrap("últimas ventas", err)
	})
	g.Go(func() (err error) {
		history, err = uc.repo.MonthlyHistory(gctx, q, "")
		return wrap("histórico mensual", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.DashboardResponse{
		Period: dto.PeriodDTO{Label: from.Format("2006-01"), From: from, To: to},
		Current: dto.PeriodTotalsDTO{
			TotalAmount:       totals.TotalAmount,
			TotalCommission:   totals.TotalCommission,
			Count:             totals.Count,
			AverageAmount:     commission.Average(totals.TotalAmount, totals.Count),
			AverageCommission: commission.Average(totals.TotalCommission, totals.Count),
		},
		Ranking:     make([]dto.RepRankingDTO, 0, len(ranking)),
		TopSales:    toSummaries(top),
		RecentSales: toSummaries(recent),
		History:     make([]dto.MonthlyTotalsDTO, 0, len(history)),
	}
	for _, r := range ranking {
		out.Ranking = append(out.Ranking, dto.RepRankingDTO{RepID: r.RepID, RepName: r.RepName, TotalAmount: r.TotalAmount, Count: r.Count})
	}
	for _, h := range history {
		out.History = append(out.History, dto.MonthlyTotalsDTO{Period: h.Period, AmountSum: h.AmountSum, CommissionSum: h.CommissionSum})
	}
	return out, nil
}

func toSummaries(sales []*entity.Sale) []dto.SaleSummaryDTO {
	out := make([]dto.SaleSummaryDTO, 0, len(sales))
	for _, s := range sales {
		out = append(out, dto.SaleSummaryDTO{SaleID: s.ID, RepID: s.SalesRepID, RepName: s.RepName, Amount: s.Amount, CreatedAt: s.CreatedAt})
	}
	return out
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("dashboard: %s: %w", what, err)
}
