package repository

import (
	"context"

	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

// TenantRepository define el puerto de persistencia para Tenant (DIP).
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	// GetWithModules devuelve la empresa con su conjunto de módulos activos ya materializado,
	// en una sola lectura. Devuelve (nil, nil) si no existe.
	GetWithModules(ctx context.Context, id string) (*entity.Tenant, error)
	// ReplaceModules reemplaza el conjunto de módulos activos por los IDs indicados.
	ReplaceModules(ctx context.Context, tenantID string, moduleIDs []string) error
}
