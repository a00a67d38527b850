package salesrep_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/comisiones-api/internal/application/dto"
	"github.com/jhoicas/comisiones-api/internal/application/salesrep"
	"github.com/jhoicas/comisiones-api/internal/application/tenancy"
	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/infrastructure/memory"
	"github.com/jhoicas/comisiones-api/pkg/clock"
	"github.com/jhoicas/comisiones-api/pkg/logger"
)

var now = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*memory.Store, *salesrep.Service) {
	t.Helper()
	s := memory.NewStore()
	svc := salesrep.NewService(s, memory.NewSalesRepRepository(s), memory.NewDashboardRepository(s), time.UTC, clock.NewFake(now), logger.Nop())
	return s, svc
}

func adminOf(t *testing.T, s *memory.Store, tenantID string) *tenancy.Caller {
	t.Helper()
	ctx := context.Background()
	repos := s.Repos()
	require.NoError(t, repos.Tenants.Create(ctx, &entity.Tenant{ID: tenantID, Name: tenantID}))
	p := &entity.Principal{ID: tenantID + "-admin", TenantID: tenantID, Name: "Admin", Email: tenantID + "-admin@x.com", Role: entity.RoleTenantAdmin}
	require.NoError(t, repos.Principals.Create(ctx, p))
	return tenancy.NewCaller(p)
}

func pct(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreate_ProvisionsPrincipalAndRep(t *testing.T) {
	s, svc := setup(t)
	admin := adminOf(t, s, "A")
	ctx := context.Background()

	out, err := svc.Create(ctx, admin, dto.CreateSalesRepRequest{Name: "Ana Pérez", Email: " Ana@Acme.com ", CommissionPercentage: pct("7.5")})
	require.NoError(t, err)
	assert.Equal(t, "ana@acme.com", out.Email)
	assert.Len(t, out.TemporaryPassword, 12)
	assert.True(t, decimal.RequireFromString("7.50").Equal(*out.CommissionPercentage))

	p, err := s.Repos().Principals.GetByEmail(ctx, "ana@acme.com")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, entity.RoleSalesRep, p.Role)
	assert.Equal(t, "A", p.TenantID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(out.TemporaryPassword)))

	got, err := svc.Get(ctx, admin, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", got.Name)
}

func TestCreate_DuplicateEmailIsConflict(t *testing.T) {
	s, svc := setup(t)
	admin := adminOf(t, s, "A")
	ctx := context.Background()

	_, err := svc.Create(ctx, admin, dto.CreateSalesRepRequest{Name: "Ana", Email: "ana@acme.com", CommissionPercentage: pct("5")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, admin, dto.CreateSalesRepRequest{Name: "Otra Ana", Email: "ANA@acme.com", CommissionPercentage: pct("5")})
	assert.ErrorIs(t, err, domain.ErrConflict)

	list, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreate_Validation(t *testing.T) {
	s, svc := setup(t)
	admin := adminOf(t, s, "A")

	cases := []dto.CreateSalesRepRequest{
		{Name: "Al", Email: "al@acme.com", CommissionPercentage: pct("5")},
		{Name: "Alberto", Email: "no-es-email", CommissionPercentage: pct("5")},
		{Name: "Alberto", Email: "al@acme.com", CommissionPercentage: pct("-1")},
		{Name: "Alberto", Email: "al@acme.com"},
	}
	for _, in := range cases {
		_, err := svc.Create(context.Background(), admin, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}
}

func TestGet_OtherTenantIsNotFound(t *testing.T) {
	s, svc := setup(t)
	a := adminOf(t, s, "A")
	b := adminOf(t, s, "B")
	ctx := context.Background()

	rep, err := svc.Create(ctx, b, dto.CreateSalesRepRequest{Name: "Beto", Email: "beto@b.com", CommissionPercentage: pct("5")})
	require.NoError(t, err)

	_, err = svc.Get(ctx, a, rep.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.UpdatePercentage(ctx, a, rep.ID, dto.UpdateSalesRepRequest{CommissionPercentage: pct("9")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Details(ctx, a, rep.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdatePercentage(t *testing.T) {
	s, svc := setup(t)
	admin := adminOf(t, s, "A")
	ctx := context.Background()
	rep, err := svc.Create(ctx, admin, dto.CreateSalesRepRequest{Name: "Ana", Email: "ana@acme.com", CommissionPercentage: pct("5")})
	require.NoError(t, err)

	_, err = svc.UpdatePercentage(ctx, admin, rep.ID, dto.UpdateSalesRepRequest{CommissionPercentage: pct("-2")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := svc.UpdatePercentage(ctx, admin, rep.ID, dto.UpdateSalesRepRequest{CommissionPercentage: pct("3.33")})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("3.33").Equal(*out.CommissionPercentage))

	got, err := svc.Get(ctx, admin, rep.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("3.33").Equal(*got.CommissionPercentage))
}

func TestDetails_CountsConfirmedOnly(t *testing.T) {
	s, svc := setup(t)
	admin := adminOf(t, s, "A")
	ctx := context.Background()
	rep, err := svc.Create(ctx, admin, dto.CreateSalesRepRequest{Name: "Ana", Email: "ana@acme.com", CommissionPercentage: pct("10")})
	require.NoError(t, err)

	sales := s.Repos().Sales
	add := func(id, amount, comm string, status entity.SaleStatus, at time.Time) {
		require.NoError(t, sales.Create(ctx, &entity.Sale{
			ID: id, TenantID: "A", SalesRepID: rep.ID,
			Amount: decimal.RequireFromString(amount), Commission: decimal.RequireFromString(comm),
			Status: status, CreatedAt: at,
		}))
	}
	add("1", "100", "10", entity.SaleStatusConfirmed, now)
	add("2", "50", "5", entity.SaleStatusConfirmed, now.AddDate(0, -1, 0))
	add("3", "999", "99.9", entity.SaleStatusPending, now)

	out, err := svc.Details(ctx, admin, rep.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.SalesCount)
	assert.True(t, decimal.NewFromInt(150).Equal(out.TotalSales))
	assert.True(t, decimal.RequireFromString("7.50").Equal(out.AverageCommission))
	require.Len(t, out.History, 2)
	assert.Equal(t, "2024-06", out.History[0].Period)
	assert.Equal(t, "2024-05", out.History[1].Period)
}

func TestDetails_NoSales(t *testing.T) {
	s, svc := setup(t)
	admin := adminOf(t, s, "A")
	ctx := context.Background()
	rep, err := svc.Create(ctx, admin, dto.CreateSalesRepRequest{Name: "Ana", Email: "ana@acme.com", CommissionPercentage: pct("10")})
	require.NoError(t, err)

	out, err := svc.Details(ctx, admin, rep.ID)
	require.NoError(t, err)
	assert.Zero(t, out.SalesCount)
	assert.True(t, out.AverageCommission.IsZero())
	assert.Empty(t, out.History)
}

func TestPercentageLimits(t *testing.T) {
	s, svc := setup(t)
	admin := adminOf(t, s, "A")
	ctx := context.Background()

	_, err := svc.Create(ctx, admin, dto.CreateSalesRepRequest{Name: "Ana", Email: "ana@acme.com", CommissionPercentage: pct("1000")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	rep, err := svc.Create(ctx, admin, dto.CreateSalesRepRequest{Name: "Ana", Email: "ana@acme.com", CommissionPercentage: pct("999.99")})
	require.NoError(t, err)

	_, err = svc.UpdatePercentage(ctx, admin, rep.ID, dto.UpdateSalesRepRequest{CommissionPercentage: pct("1000.00")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMalformedIDIsNotFound(t *testing.T) {
	s, svc := setup(t)
	admin := adminOf(t, s, "A")
	ctx := context.Background()

	_, err := svc.Get(ctx, admin, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.UpdatePercentage(ctx, admin, "abc", dto.UpdateSalesRepRequest{CommissionPercentage: pct("5")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Details(ctx, admin, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
