package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardResponse respuesta de GET /api/dashboard. Solo cuenta ventas CONFIRMED.
type DashboardResponse struct {
	// Mes en curso (zona horaria de la app)
	Period  PeriodDTO       `json:"period"`
	Current PeriodTotalsDTO `json:"current"`

	Ranking     []RepRankingDTO    `json:"ranking"`
	TopSales    []SaleSummaryDTO   `json:"topSales"`
	RecentSales []SaleSummaryDTO   `json:"recentSales"`
	History     []MonthlyTotalsDTO `json:"history"`
}

// PeriodDTO intervalo [From, To) del período actual.
type PeriodDTO struct {
	Label string    `json:"label"` // "YYYY-MM"
	From  time.Time `json:"from"`
	To    time.Time `json:"to"`
}

// PeriodTotalsDTO totales y promedios del período.
type PeriodTotalsDTO struct {
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	TotalCommission   decimal.Decimal `json:"totalCommission"`
	Count             int64           `json:"count"`
	AverageAmount     decimal.Decimal `json:"averageAmount"`
	AverageCommission decimal.Decimal `json:"averageCommission"`
}

// RepRankingDTO fila del ranking de vendedores.
type RepRankingDTO struct {
	RepID       string          `json:"repId"`
	RepName     string          `json:"repName"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Count       int64           `json:"count"`
}

// SaleSummaryDTO venta resumida para los widgets de mayores/últimas ventas.
type SaleSummaryDTO struct {
	SaleID    string          `json:"saleId"`
	RepID     string          `json:"repId"`
	RepName   string          `json:"repName"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
}

// MonthlyTotalsDTO fila del histórico mensual.
type MonthlyTotalsDTO struct {
	Period        string          `json:"period"` // "YYYY-MM"
	AmountSum     decimal.Decimal `json:"amountSum"`
	CommissionSum decimal.Decimal `json:"commissionSum"`
}
