package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estado del ciclo de vida de una venta.
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusConfirmed SaleStatus = "CONFIRMED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

// Sale venta registrada por un vendedor. TenantID está desnormalizado y siempre
// coincide con el TenantID del vendedor.
type Sale struct {
	ID          string
	TenantID    string
	SalesRepID  string
	RepName     string // resuelto en lectura
	Amount      decimal.Decimal
	Commission  decimal.Decimal
	Description string
	Status      SaleStatus
	CreatedAt   time.Time
}

// transitions PENDING -> CONFIRMED | CANCELLED, CONFIRMED -> CANCELLED. CANCELLED es terminal.
var transitions = map[SaleStatus][]SaleStatus{
	SaleStatusPending:   {SaleStatusConfirmed, SaleStatusCancelled},
	SaleStatusConfirmed: {SaleStatusCancelled},
}

// CanTransition informa si la venta puede pasar de from a to.
func CanTransition(from, to SaleStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// SourcesFor devuelve los estados desde los que se puede llegar a to.
func SourcesFor(to SaleStatus) []SaleStatus {
	var out []SaleStatus
	for _, from := range []SaleStatus{SaleStatusPending, SaleStatusConfirmed, SaleStatusCancelled} {
		if CanTransition(from, to) {
			out = append(out, from)
		}
	}
	return out
}
