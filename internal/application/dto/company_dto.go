package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTenantRequest alta de empresa por el super admin, con su primer administrador.
type CreateTenantRequest struct {
	Name      string             `json:"name" validate:"required,min=1,max=160"`
	LegalName string             `json:"legalName" validate:"omitempty,max=200"`
	Admin     TenantAdminRequest `json:"admin" validate:"required"`
}

// TenantAdminRequest datos del TENANT_ADMIN inicial.
type TenantAdminRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// ReplaceModulesRequest conjunto completo de módulos activos de una empresa.
type ReplaceModulesRequest struct {
	ModuleIDs []string `json:"moduleIds" validate:"dive,uuid"`
}

// TenantResponse empresa con sus claves de módulo activas.
type TenantResponse struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	LegalName  string             `json:"legalName"`
	ModuleKeys []string           `json:"moduleKeys"`
	Admin      *PrincipalResponse `json:"admin,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// ModuleResponse entrada del catálogo público de módulos.
type ModuleResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Key          string          `json:"key"`
	Description  string          `json:"description"`
	MonthlyPrice decimal.Decimal `json:"monthlyPrice"`
}

// ActiveModulesResponse claves de los módulos activos de la empresa del llamador.
type ActiveModulesResponse struct {
	ModuleKeys []string `json:"moduleKeys"`
}

// TenantProfileResponse empresa del llamador con la cantidad de administradores y vendedores.
type TenantProfileResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	LegalName     string    `json:"legalName"`
	ModuleKeys    []string  `json:"moduleKeys"`
	AdminCount    int64     `json:"adminCount"`
	SalesRepCount int64     `json:"salesRepCount"`
	CreatedAt     time.Time `json:"createdAt"`
}
