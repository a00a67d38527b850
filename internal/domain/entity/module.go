package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ModuleKey clave corta de autorización de un módulo (ej. "COMMISSIONS_CORE").
type ModuleKey string

// ModuleCommissionsCore módulo que habilita ventas, vendedores y dashboard.
const ModuleCommissionsCore ModuleKey = "COMMISSIONS_CORE"

// ModuleStatus ciclo de vida de un módulo del catálogo.
type ModuleStatus string

const (
	ModuleStatusInDevelopment      ModuleStatus = "IN_DEVELOPMENT"
	ModuleStatusInTest             ModuleStatus = "IN_TEST"
	ModuleStatusReadyForProduction ModuleStatus = "READY_FOR_PRODUCTION"
	ModuleStatusArchived           ModuleStatus = "ARCHIVED"
)

// Module producto SaaS que una empresa puede contratar.
// Solo los módulos READY_FOR_PRODUCTION se listan en el catálogo público;
// los IsDefault se asignan automáticamente a las empresas nuevas.
type Module struct {
	ID           string
	Name         string
	Key          ModuleKey
	Status       ModuleStatus
	Description  string
	MonthlyPrice decimal.Decimal
	IsDefault    bool
	CreatedAt    time.Time
}

// IsSellable informa si el módulo puede ofrecerse públicamente.
func (m *Module) IsSellable() bool {
	return m != nil && m.Status == ModuleStatusReadyForProduction
}
