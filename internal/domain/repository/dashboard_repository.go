package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

// PeriodTotals resultado crudo de los totales de un período.
type PeriodTotals struct {
	TotalAmount     decimal.Decimal
	TotalCommission decimal.Decimal
	Count           int64
}

// RepRanking fila del ranking de vendedores.
type RepRanking struct {
	RepID       string
	RepName     string
	TotalAmount decimal.Decimal
	Count       int64
}

// MonthlyTotals fila del histórico mensual. Period con formato "YYYY-MM".
type MonthlyTotals struct {
	Period        string
	AmountSum     decimal.Decimal
	CommissionSum decimal.Decimal
}

// DashboardQuery filtros comunes de las consultas del dashboard.
// Solo se consideran ventas con Status; From/To delimitan el período [From, To).
type DashboardQuery struct {
	TenantID string
	Status   entity.SaleStatus
	From     time.Time
	To       time.Time
	Location *time.Location // calendario usado para agrupar por mes
}

// DashboardRepository consultas de solo lectura sobre las ventas de una empresa.
// Ninguna consulta cruza empresas.
type DashboardRepository interface {
	// PeriodTotals suma monto y comisión y cuenta ventas del período. Cero si no hay filas.
	PeriodTotals(ctx context.Context, q DashboardQuery) (PeriodTotals, error)

	// Ranking devuelve los `limit` vendedores con mayor monto en el período,
	// ordenados por monto y luego por cantidad, ambos descendentes.
	Ranking(ctx context.Context, q DashboardQuery, limit int) ([]RepRanking, error)

	// TopSales devuelve las `limit` ventas de mayor monto (histórico completo; From/To se ignoran).
	TopSales(ctx context.Context, q DashboardQuery, limit int) ([]*entity.Sale, error)

	// RecentSales devuelve las `limit` ventas más recientes (histórico completo).
	RecentSales(ctx context.Context, q DashboardQuery, limit int) ([]*entity.Sale, error)

	// MonthlyHistory una fila por mes con al menos una venta, del más reciente al más antiguo.
	// Si repID no es vacío, se limita a ese vendedor.
	MonthlyHistory(ctx context.Context, q DashboardQuery, repID string) ([]MonthlyTotals, error)

	// RepTotals totales históricos de un vendedor (cantidad, monto, comisión).
	RepTotals(ctx context.Context, q DashboardQuery, repID string) (PeriodTotals, error)
}
