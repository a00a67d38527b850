package entity

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Role rol de un Principal. Conjunto cerrado; cualquier otro valor es inválido.
type Role string

const (
	RoleSuperAdmin  Role = "SUPER_ADMIN"
	RoleTenantAdmin Role = "TENANT_ADMIN"
	RoleSalesRep    Role = "SALES_REP"
)

// ParseRole convierte el texto del token o de la DB en un Role conocido.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleSuperAdmin, RoleTenantAdmin, RoleSalesRep:
		return Role(s), true
	default:
		return "", false
	}
}

// Principal identidad de login. TenantID es vacío solo para SUPER_ADMIN.
type Principal struct {
	ID           string
	TenantID     string
	Name         string
	Email        string
	PasswordHash string // bcrypt
	Role         Role
	CreatedAt    time.Time
}

// HasTenant informa si el principal pertenece a una empresa.
func (p *Principal) HasTenant() bool {
	return p != nil && p.TenantID != ""
}

// NormalizeEmail recorta espacios y pliega mayúsculas: el email es el identificador de login
// y también el subject del token.
func NormalizeEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}
