package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSalesRepRequest alta de vendedor. La contraseña la genera el sistema.
type CreateSalesRepRequest struct {
	Name                 string           `json:"name" validate:"required,min=3,max=100"`
	Email                string           `json:"email" validate:"required,email,max=100"`
	CommissionPercentage *decimal.Decimal `json:"commissionPercentage" validate:"required,gte=0"`
}

// UpdateSalesRepRequest cambio del porcentaje de comisión.
type UpdateSalesRepRequest struct {
	CommissionPercentage *decimal.Decimal `json:"commissionPercentage" validate:"required,gte=0"`
}

// SalesRepResponse proyección de un vendedor.
type SalesRepResponse struct {
	ID                   string           `json:"id"`
	PrincipalID          string           `json:"principalId"`
	Name                 string           `json:"name"`
	Email                string           `json:"email"`
	CommissionPercentage *decimal.Decimal `json:"commissionPercentage"`
	CreatedAt            time.Time        `json:"createdAt"`
}

// SalesRepCreatedResponse incluye la contraseña temporal; solo se devuelve una vez.
type SalesRepCreatedResponse struct {
	SalesRepResponse
	TemporaryPassword string `json:"temporaryPassword"`
}

// SalesRepDetailsResponse perfil del vendedor con métricas históricas de ventas confirmadas.
type SalesRepDetailsResponse struct {
	SalesRepResponse
	SalesCount        int64              `json:"salesCount"`
	TotalSales        decimal.Decimal    `json:"totalSales"`
	AverageCommission decimal.Decimal    `json:"averageCommission"`
	History           []MonthlyTotalsDTO `json:"history"`
}
