// Package authz expresa la decisión de acceso como una función explícita
// (rol, módulos de la empresa, requisito) -> permitir | denegar.
package authz

import "github.com/jhoicas/comisiones-api/internal/domain/entity"

// Decision resultado de la evaluación de acceso.
type Decision int

const (
	Deny Decision = iota
	Allow
)

// Requirement lo que exige una operación: alguno de los roles y, si Module no es vacío, ese módulo activo.
type Requirement struct {
	Roles  []entity.Role
	Module entity.ModuleKey
}

// Decide evalúa el requisito. Una lista de roles vacía acepta cualquier rol conocido.
// El motivo de la denegación no se expone: el llamador solo ve Allow o Deny.
func Decide(role entity.Role, modules entity.ModuleSet, req Requirement) Decision {
	if _, ok := entity.ParseRole(string(role)); !ok {
		return Deny
	}
	if len(req.Roles) > 0 && !containsRole(req.Roles, role) {
		return Deny
	}
	if req.Module != "" && !modules.Has(req.Module) {
		return Deny
	}
	return Allow
}

func containsRole(roles []entity.Role, role entity.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
