// Package entitlement responde si una empresa tiene un módulo activo y combina
// esa respuesta con el rol del llamador.
package entitlement

import (
	"context"
	"fmt"

	"github.com/jhoicas/comisiones-api/internal/application/tenancy"
	"github.com/jhoicas/comisiones-api/internal/domain/authz"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
)

// Guard lee el agregado empresa + módulos en una sola lectura antes de decidir.
type Guard struct {
	tenants repository.TenantRepository
}

// NewGuard construye el guard.
func NewGuard(tenants repository.TenantRepository) *Guard {
	return &Guard{tenants: tenants}
}

// HasModule false (sin error) si la empresa no existe, no tiene módulos o tenantID es vacío.
func (g *Guard) HasModule(ctx context.Context, tenantID string, key entity.ModuleKey) (bool, error) {
	modules, err := g.modules(ctx, tenantID)
	if err != nil {
		return false, err
	}
	return modules.Has(key), nil
}

// ModuleKeys claves activas ordenadas; vacío si no hay empresa.
func (g *Guard) ModuleKeys(ctx context.Context, tenantID string) ([]entity.ModuleKey, error) {
	modules, err := g.modules(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return modules.Keys(), nil
}

// Authorize aplica authz.Decide con el rol vigente del llamador y los módulos de su empresa.
// Un llamador sin empresa no tiene módulos.
func (g *Guard) Authorize(ctx context.Context, caller *tenancy.Caller, req authz.Requirement) (bool, error) {
	if caller == nil || caller.Principal() == nil {
		return false, nil
	}
	var modules entity.ModuleSet
	if req.Module != "" {
		tenantID, err := caller.TenantID()
		if err == nil {
			if modules, err = g.modules(ctx, tenantID); err != nil {
				return false, err
			}
		}
	}
	return authz.Decide(caller.Role(), modules, req) == authz.Allow, nil
}

func (g *Guard) modules(ctx context.Context, tenantID string) (entity.ModuleSet, error) {
	if tenantID == "" {
		return nil, nil
	}
	tenant, err := g.tenants.GetWithModules(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("load tenant modules: %w", err)
	}
	if tenant == nil {
		return nil, nil
	}
	return tenant.Modules, nil
}
