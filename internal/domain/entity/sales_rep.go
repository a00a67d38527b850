package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesRep perfil de vendedor de una empresa, uno a uno con su Principal de login.
// Name y Email se resuelven desde el Principal al leer.
type SalesRep struct {
	ID                   string
	TenantID             string
	PrincipalID          string
	CommissionPercentage *decimal.Decimal // nil = sin porcentaje configurado (se trata como cero)
	Name                 string
	Email                string
	CreatedAt            time.Time
}

// Percentage devuelve el porcentaje de comisión, o cero si no está configurado.
func (r *SalesRep) Percentage() decimal.Decimal {
	if r == nil || r.CommissionPercentage == nil {
		return decimal.Zero
	}
	return *r.CommissionPercentage
}
