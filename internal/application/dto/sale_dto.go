package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada de POST /api/sales (canal admin).
type CreateSaleRequest struct {
	RepID       string          `json:"repId" validate:"required,uuid"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Description string          `json:"description" validate:"omitempty,max=255"`
}

// SelfSaleRequest entrada de POST /api/self-service/sales (canal vendedor).
type SelfSaleRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Description string          `json:"description" validate:"omitempty,max=255"`
}

// UpdateSaleRequest entrada de PUT /api/sales/:id.
type UpdateSaleRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Description string          `json:"description" validate:"omitempty,max=255"`
}

// SaleResponse proyección de una venta con el vendedor ya resuelto.
type SaleResponse struct {
	ID          string          `json:"id"`
	RepID       string          `json:"repId"`
	RepName     string          `json:"repName"`
	Amount      decimal.Decimal `json:"amount"`
	Commission  decimal.Decimal `json:"commission"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}
