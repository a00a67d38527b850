package analytics_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comisiones-api/internal/application/analytics"
	"github.com/jhoicas/comisiones-api/internal/application/dto"
	"github.com/jhoicas/comisiones-api/internal/application/sales"
	"github.com/jhoicas/comisiones-api/internal/application/tenancy"
	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/infrastructure/memory"
	"github.com/jhoicas/comisiones-api/pkg/clock"
	"github.com/jhoicas/comisiones-api/pkg/logger"
)

var now = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store *memory.Store
	clock *clock.Fake
	uc    *analytics.DashboardUseCase
	admin *tenancy.Caller
	seq   int
}

func newFixture(t *testing.T, loc *time.Location) *fixture {
	t.Helper()
	s := memory.NewStore()
	clk := clock.NewFake(now)
	ctx := context.Background()
	repos := s.Repos()
	require.NoError(t, repos.Tenants.Create(ctx, &entity.Tenant{ID: "T", Name: "T"}))
	admin := &entity.Principal{ID: "T-admin", TenantID: "T", Name: "Admin", Email: "admin@t.com", Role: entity.RoleTenantAdmin}
	require.NoError(t, repos.Principals.Create(ctx, admin))
	return &fixture{
		store: s,
		clock: clk,
		uc:    analytics.NewDashboardUseCase(memory.NewDashboardRepository(s), loc, 5, clk),
		admin: tenancy.NewCaller(admin),
	}
}

func (f *fixture) rep(t *testing.T, tenantID, name, pct string) string {
	t.Helper()
	ctx := context.Background()
	id := tenantID + "-" + name
	repos := f.store.Repos()
	require.NoError(t, repos.Principals.Create(ctx, &entity.Principal{ID: id + "-p", TenantID: tenantID, Name: name, Email: id + "@t.com", Role: entity.RoleSalesRep}))
	p := decimal.RequireFromString(pct)
	require.NoError(t, repos.SalesReps.Create(ctx, &entity.SalesRep{ID: id, TenantID: tenantID, PrincipalID: id + "-p", CommissionPercentage: &p}))
	return id
}

func (f *fixture) sale(t *testing.T, tenantID, repID, amount, comm string, status entity.SaleStatus, at time.Time) {
	t.Helper()
	f.seq++
	require.NoError(t, f.store.Repos().Sales.Create(context.Background(), &entity.Sale{
		ID: fmt.Sprintf("s%03d", f.seq), TenantID: tenantID, SalesRepID: repID,
		Amount: decimal.RequireFromString(amount), Commission: decimal.RequireFromString(comm),
		Status: status, CreatedAt: at,
	}))
}

func TestCurrentPeriod(t *testing.T) {
	cot := time.FixedZone("COT", -5*3600)
	from, to := analytics.CurrentPeriod(time.Date(2024, 7, 1, 2, 0, 0, 0, time.UTC), cot)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, cot), from)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, cot), to)

	from, to = analytics.CurrentPeriod(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC), time.UTC)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestDashboard_RankingByAmount(t *testing.T) {
	f := newFixture(t, time.UTC)
	r1 := f.rep(t, "T", "R1", "5")
	r2 := f.rep(t, "T", "R2", "5")
	for i := 0; i < 3; i++ {
		f.sale(t, "T", r1, "100", "5", entity.SaleStatusConfirmed, now.Add(-time.Duration(i)*time.Hour))
	}
	f.sale(t, "T", r2, "500", "25", entity.SaleStatusConfirmed, now)

	out, err := f.uc.GetDashboard(context.Background(), f.admin)
	require.NoError(t, err)
	require.Len(t, out.Ranking, 2)
	assert.Equal(t, r2, out.Ranking[0].RepID)
	assert.Equal(t, "R2", out.Ranking[0].RepName)
	assert.Equal(t, r1, out.Ranking[1].RepID)
	assert.Equal(t, int64(3), out.Ranking[1].Count)
	assert.True(t, decimal.NewFromInt(300).Equal(out.Ranking[1].TotalAmount))
}

func TestDashboard_TotalsAndAverages(t *testing.T) {
	f := newFixture(t, time.UTC)
	r1 := f.rep(t, "T", "R1", "5")
	f.sale(t, "T", r1, "100.00", "5.00", entity.SaleStatusConfirmed, now)
	f.sale(t, "T", r1, "50.00", "2.50", entity.SaleStatusConfirmed, now)
	f.sale(t, "T", r1, "10.00", "0.50", entity.SaleStatusConfirmed, now)
	f.sale(t, "T", r1, "999.00", "49.95", entity.SaleStatusPending, now)
	f.sale(t, "T", r1, "777.00", "38.85", entity.SaleStatusCancelled, now)
	f.sale(t, "T", r1, "40.00", "2.00", entity.SaleStatusConfirmed, now.AddDate(0, -1, 0))

	out, err := f.uc.GetDashboard(context.Background(), f.admin)
	require.NoError(t, err)
	assert.Equal(t, "2024-06", out.Period.Label)
	assert.Equal(t, int64(3), out.Current.Count)
	assert.True(t, decimal.RequireFromString("160.00").Equal(out.Current.TotalAmount))
	assert.True(t, decimal.RequireFromString("8.00").Equal(out.Current.TotalCommission))
	assert.True(t, decimal.RequireFromString("53.33").Equal(out.Current.AverageAmount))
	assert.True(t, decimal.RequireFromString("2.67").Equal(out.Current.AverageCommission))

	require.Len(t, out.History, 2)
	assert.Equal(t, "2024-06", out.History[0].Period)
	assert.True(t, decimal.RequireFromString("160").Equal(out.History[0].AmountSum))
	assert.Equal(t, "2024-05", out.History[1].Period)

	require.Len(t, out.TopSales, 4)
	assert.True(t, decimal.NewFromInt(100).Equal(out.TopSales[0].Amount))
	for _, s := range append(out.TopSales, out.RecentSales...) {
		assert.False(t, s.Amount.Equal(decimal.NewFromInt(999)), "una venta pendiente no debe aparecer")
	}
}

func TestDashboard_EmptyTenant(t *testing.T) {
	f := newFixture(t, time.UTC)

	out, err := f.uc.GetDashboard(context.Background(), f.admin)
	require.NoError(t, err)
	assert.Zero(t, out.Current.Count)
	assert.True(t, out.Current.AverageAmount.IsZero())
	assert.True(t, out.Current.AverageCommission.IsZero())
	assert.Empty(t, out.Ranking)
	assert.Empty(t, out.TopSales)
	assert.Empty(t, out.RecentSales)
	assert.Empty(t, out.History)
}

func TestDashboard_TopNLimitsLists(t *testing.T) {
	f := newFixture(t, time.UTC)
	reps := make([]string, 7)
	for i := range reps {
		reps[i] = f.rep(t, "T", fmt.Sprintf("R%d", i), "5")
		f.sale(t, "T", reps[i], fmt.Sprintf("%d", 10*(i+1)), "1", entity.SaleStatusConfirmed, now.Add(time.Duration(-i)*time.Minute))
	}

	out, err := f.uc.GetDashboard(context.Background(), f.admin)
	require.NoError(t, err)
	assert.Len(t, out.Ranking, 5)
	assert.Len(t, out.TopSales, 5)
	assert.Len(t, out.RecentSales, 5)
	assert.Equal(t, reps[6], out.Ranking[0].RepID)
	assert.Equal(t, reps[0], out.RecentSales[0].RepID)
}

func TestDashboard_UsesConfiguredTimezone(t *testing.T) {
	cot := time.FixedZone("COT", -5*3600)
	f := newFixture(t, cot)
	r1 := f.rep(t, "T", "R1", "5")
	// 2024-07-01 02:00 UTC es todavía 30 de junio en COT.
	late := time.Date(2024, 7, 1, 2, 0, 0, 0, time.UTC)
	f.sale(t, "T", r1, "100", "5", entity.SaleStatusConfirmed, late)
	f.clock.Set(late)

	out, err := f.uc.GetDashboard(context.Background(), f.admin)
	require.NoError(t, err)
	assert.Equal(t, "2024-06", out.Period.Label)
	assert.Equal(t, int64(1), out.Current.Count)
	require.Len(t, out.History, 1)
	assert.Equal(t, "2024-06", out.History[0].Period)
}

func TestDashboard_TenantIsolation(t *testing.T) {
	f := newFixture(t, time.UTC)
	require.NoError(t, f.store.Repos().Tenants.Create(context.Background(), &entity.Tenant{ID: "O", Name: "O"}))
	other := f.rep(t, "O", "X", "5")
	f.sale(t, "O", other, "1000", "50", entity.SaleStatusConfirmed, now)

	out, err := f.uc.GetDashboard(context.Background(), f.admin)
	require.NoError(t, err)
	assert.Zero(t, out.Current.Count)
	assert.Empty(t, out.Ranking)
	assert.Empty(t, out.History)
}

func TestDashboard_PendingCountsOnlyAfterApproval(t *testing.T) {
	f := newFixture(t, time.UTC)
	f.rep(t, "T", "U", "5")
	ctx := context.Background()
	repCaller, err := tenancy.NewResolver(memory.NewPrincipalRepository(f.store)).Resolve(ctx, "T-U@t.com")
	require.NoError(t, err)

	ledger := sales.NewLedger(f.store, memory.NewSalesRepRepository(f.store), memory.NewSaleRepository(f.store), f.clock, logger.Nop())
	sale, err := ledger.RecordBySelf(ctx, repCaller, dto.SelfSaleRequest{Amount: decimal.RequireFromString("200.00")})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("10.00").Equal(sale.Commission))

	before, err := f.uc.GetDashboard(ctx, f.admin)
	require.NoError(t, err)
	assert.Zero(t, before.Current.Count)
	assert.Empty(t, before.Ranking)
	assert.Empty(t, before.History)

	_, err = ledger.Approve(ctx, f.admin, sale.ID)
	require.NoError(t, err)

	after, err := f.uc.GetDashboard(ctx, f.admin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), after.Current.Count)
	assert.True(t, decimal.RequireFromString("200.00").Equal(after.Current.TotalAmount))
	assert.True(t, decimal.RequireFromString("10.00").Equal(after.Current.TotalCommission))
	require.Len(t, after.Ranking, 1)
	require.Len(t, after.History, 1)
}

func TestDashboard_SuperAdminHasNoTenant(t *testing.T) {
	f := newFixture(t, time.UTC)
	super := tenancy.NewCaller(&entity.Principal{ID: "root", Email: "root@x.com", Role: entity.RoleSuperAdmin})
	_, err := f.uc.GetDashboard(context.Background(), super)
	assert.ErrorIs(t, err, domain.ErrNoTenant)
}
