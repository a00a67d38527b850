package memory_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
	"github.com/jhoicas/comisiones-api/internal/infrastructure/memory"
)

var (
	ctx = context.Background()
	t0  = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
)

// fixture crea una empresa con dos vendedores (R1, R2).
func fixture(t *testing.T, s *memory.Store, tenantID string) (r1, r2 string) {
	t.Helper()
	repos := s.Repos()
	require.NoError(t, repos.Tenants.Create(ctx, &entity.Tenant{ID: tenantID, Name: tenantID, CreatedAt: t0}))
	for _, id := range []string{tenantID + "-R1", tenantID + "-R2"} {
		require.NoError(t, repos.Principals.Create(ctx, &entity.Principal{
			ID: id + "-p", TenantID: tenantID, Name: id, Email: id + "@x.com", Role: entity.RoleSalesRep,
		}))
		require.NoError(t, repos.SalesReps.Create(ctx, &entity.SalesRep{ID: id, TenantID: tenantID, PrincipalID: id + "-p"}))
	}
	return tenantID + "-R1", tenantID + "-R2"
}

func addSale(t *testing.T, s *memory.Store, id, tenantID, repID, amount string, status entity.SaleStatus, at time.Time) {
	t.Helper()
	require.NoError(t, s.Repos().Sales.Create(ctx, &entity.Sale{
		ID: id, TenantID: tenantID, SalesRepID: repID,
		Amount: decimal.RequireFromString(amount), Commission: decimal.Zero,
		Status: status, CreatedAt: at,
	}))
}

func query(tenantID string) repository.DashboardQuery {
	return repository.DashboardQuery{
		TenantID: tenantID,
		Status:   entity.SaleStatusConfirmed,
		From:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		To:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Location: time.UTC,
	}
}

func TestTenantRepo_GetWithModules(t *testing.T) {
	s := memory.NewStore()
	repos := s.Repos()
	require.NoError(t, repos.Tenants.Create(ctx, &entity.Tenant{ID: "t1", Name: "Acme"}))

	tenant, err := repos.Tenants.GetWithModules(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, tenant.HasModule(entity.ModuleCommissionsCore))

	require.NoError(t, repos.Tenants.ReplaceModules(ctx, "t1", []string{memory.SeedModuleID}))
	tenant, err = repos.Tenants.GetWithModules(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, tenant.HasModule(entity.ModuleCommissionsCore))

	missing, err := repos.Tenants.GetWithModules(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPrincipalRepo_DuplicateEmail(t *testing.T) {
	s := memory.NewStore()
	p := s.Repos().Principals
	require.NoError(t, p.Create(ctx, &entity.Principal{ID: "a", Email: "x@y.com"}))
	err := p.Create(ctx, &entity.Principal{ID: "b", Email: "x@y.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestSaleRepo_TenantIsolation(t *testing.T) {
	s := memory.NewStore()
	a1, _ := fixture(t, s, "A")
	fixture(t, s, "B")
	addSale(t, s, "s1", "A", a1, "100", entity.SaleStatusPending, t0)

	sales := s.Repos().Sales
	got, err := sales.GetByTenantAndID(ctx, "B", "s1")
	require.NoError(t, err)
	assert.Nil(t, got, "una venta de otra empresa no debe ser visible")

	ok, err := sales.CompareAndSetStatus(ctx, "B", "s1", []entity.SaleStatus{entity.SaleStatusPending}, entity.SaleStatusConfirmed)
	require.NoError(t, err)
	assert.False(t, ok)

	list, err := sales.ListByTenant(ctx, "B")
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err = sales.GetByTenantAndID(ctx, "A", "s1")
	require.NoError(t, err)
	assert.Equal(t, "A-R1", got.RepName)
}

func TestSaleRepo_CreateRejectsForeignRep(t *testing.T) {
	s := memory.NewStore()
	fixture(t, s, "A")
	_, b2 := fixture(t, s, "B")
	err := s.Repos().Sales.Create(ctx, &entity.Sale{ID: "x", TenantID: "A", SalesRepID: b2, Status: entity.SaleStatusPending})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaleRepo_CompareAndSetStatus_SingleWinner(t *testing.T) {
	s := memory.NewStore()
	r1, _ := fixture(t, s, "A")
	addSale(t, s, "s1", "A", r1, "10", entity.SaleStatusPending, t0)

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.Repos().Sales.CompareAndSetStatus(ctx, "A", "s1",
				entity.SourcesFor(entity.SaleStatusConfirmed), entity.SaleStatusConfirmed)
			if err == nil && ok {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins)
}

func TestStore_RunRollsBackOnError(t *testing.T) {
	s := memory.NewStore()
	boom := errors.New("boom")
	err := s.Run(ctx, func(tx repository.TxRepos) error {
		require.NoError(t, tx.Principals.Create(ctx, &entity.Principal{ID: "p", Email: "p@x.com"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := s.Repos().Principals.GetByEmail(ctx, "p@x.com")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestStore_RollbackKeepsConcurrentStatusChange(t *testing.T) {
	s := memory.NewStore()
	r1, _ := fixture(t, s, "A")
	addSale(t, s, "S1", "A", r1, "100", entity.SaleStatusPending, t0)
	sales := memory.NewSaleRepository(s)
	boom := errors.New("boom")

	type result struct {
		ok  bool
		err error
	}
	done := make(chan result, 1)
	err := s.Run(ctx, func(tx repository.TxRepos) error {
		require.NoError(t, tx.Principals.Create(ctx, &entity.Principal{ID: "tmp", Email: "tmp@x.com"}))
		go func() {
			ok, err := sales.CompareAndSetStatus(ctx, "A", "S1",
				entity.SourcesFor(entity.SaleStatusConfirmed), entity.SaleStatusConfirmed)
			done <- result{ok, err}
		}()
		return boom
	})
	require.ErrorIs(t, err, boom)

	res := <-done
	require.NoError(t, res.err)
	require.True(t, res.ok)

	sale, err := sales.GetByTenantAndID(ctx, "A", "S1")
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusConfirmed, sale.Status, "el rollback no debe deshacer una transición ajena")

	ok, err := sales.CompareAndSetStatus(ctx, "A", "S1",
		entity.SourcesFor(entity.SaleStatusConfirmed), entity.SaleStatusConfirmed)
	require.NoError(t, err)
	assert.False(t, ok, "la venta ya confirmada no admite una segunda aprobación")

	p, err := s.Repos().Principals.GetByEmail(ctx, "tmp@x.com")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestDashboardRepo_RankingOrder(t *testing.T) {
	s := memory.NewStore()
	r1, r2 := fixture(t, s, "A")
	addSale(t, s, "1", "A", r1, "100", entity.SaleStatusConfirmed, t0)
	addSale(t, s, "2", "A", r1, "50", entity.SaleStatusConfirmed, t0.Add(time.Hour))
	addSale(t, s, "3", "A", r2, "200", entity.SaleStatusConfirmed, t0.Add(2*time.Hour))
	addSale(t, s, "4", "A", r2, "999", entity.SaleStatusPending, t0)
	addSale(t, s, "5", "A", r1, "999", entity.SaleStatusConfirmed, t0.AddDate(0, -1, 0))

	rows, err := memory.NewDashboardRepository(s).Ranking(ctx, query("A"), 5)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, r2, rows[0].RepID)
	assert.True(t, rows[0].TotalAmount.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, int64(1), rows[0].Count)
	assert.Equal(t, r1, rows[1].RepID)
	assert.True(t, rows[1].TotalAmount.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, int64(2), rows[1].Count)
}

func TestDashboardRepo_RankingTieBrokenByCount(t *testing.T) {
	s := memory.NewStore()
	r1, r2 := fixture(t, s, "A")
	addSale(t, s, "1", "A", r1, "100", entity.SaleStatusConfirmed, t0)
	addSale(t, s, "2", "A", r2, "60", entity.SaleStatusConfirmed, t0)
	addSale(t, s, "3", "A", r2, "40", entity.SaleStatusConfirmed, t0)

	rows, err := memory.NewDashboardRepository(s).Ranking(ctx, query("A"), 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, r2, rows[0].RepID)
}

func TestDashboardRepo_PeriodTotalsAndHistory(t *testing.T) {
	s := memory.NewStore()
	r1, _ := fixture(t, s, "A")
	b1, _ := fixture(t, s, "B")
	addSale(t, s, "1", "A", r1, "100", entity.SaleStatusConfirmed, t0)
	addSale(t, s, "2", "A", r1, "20", entity.SaleStatusConfirmed, t0.AddDate(0, -1, 0))
	addSale(t, s, "3", "A", r1, "70", entity.SaleStatusCancelled, t0)
	addSale(t, s, "4", "B", b1, "5000", entity.SaleStatusConfirmed, t0)

	repo := memory.NewDashboardRepository(s)
	totals, err := repo.PeriodTotals(ctx, query("A"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), totals.Count)
	assert.True(t, totals.TotalAmount.Equal(decimal.NewFromInt(100)))

	history, err := repo.MonthlyHistory(ctx, query("A"), "")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2024-05", history[0].Period)
	assert.Equal(t, "2024-04", history[1].Period)

	empty, err := repo.PeriodTotals(ctx, query("C"))
	require.NoError(t, err)
	assert.Zero(t, empty.Count)
	assert.True(t, empty.TotalAmount.IsZero())
}

func TestDashboardRepo_TopAndRecent(t *testing.T) {
	s := memory.NewStore()
	r1, _ := fixture(t, s, "A")
	addSale(t, s, "old-big", "A", r1, "900", entity.SaleStatusConfirmed, t0.AddDate(-1, 0, 0))
	addSale(t, s, "new-small", "A", r1, "10", entity.SaleStatusConfirmed, t0)
	addSale(t, s, "mid", "A", r1, "50", entity.SaleStatusConfirmed, t0.AddDate(0, -2, 0))

	repo := memory.NewDashboardRepository(s)
	top, err := repo.TopSales(ctx, query("A"), 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "old-big", top[0].ID)
	assert.Equal(t, "mid", top[1].ID)

	recent, err := repo.RecentSales(ctx, query("A"), 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "new-small", recent[0].ID)
	assert.Equal(t, "mid", recent[1].ID)
}
