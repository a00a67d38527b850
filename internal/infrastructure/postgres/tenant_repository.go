package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
)

var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implementación de TenantRepository sobre PostgreSQL (usable con pool o tx).
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *TenantRepo) Create(ctx context.Context, tenant *entity.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, legal_name, created_at)
		VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, query, tenant.ID, tenant.Name, tenant.LegalName, tenant.CreatedAt); err != nil {
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// GetWithModules lee la empresa y las claves de sus módulos activos en una sola consulta.
func (r *TenantRepo) GetWithModules(ctx context.Context, id string) (*entity.Tenant, error) {
	query := `
		SELECT t.id, t.name, t.legal_name, t.created_at,
		       COALESCE(array_agg(m.key) FILTER (WHERE m.key IS NOT NULL), '{}')
		FROM tenants t
		LEFT JOIN tenant_modules tm ON tm.tenant_id = t.id
		LEFT JOIN modules m ON m.id = tm.module_id
		WHERE t.id = $1
		GROUP BY t.id`
	var t entity.Tenant
	var keys []string
	err := r.q.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.LegalName, &t.CreatedAt, &keys)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapErr("get tenant", err)
	}
	moduleKeys := make([]entity.ModuleKey, len(keys))
	for i, k := range keys {
		moduleKeys[i] = entity.ModuleKey(k)
	}
	t.Modules = entity.NewModuleSet(moduleKeys...)
	return &t, nil
}

// ReplaceModules borra e inserta la asociación. Debe ejecutarse dentro de una tx.
func (r *TenantRepo) ReplaceModules(ctx context.Context, tenantID string, moduleIDs []string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM tenant_modules WHERE tenant_id = $1`, tenantID); err != nil {
		return wrapErr("clear tenant modules", err)
	}
	if len(moduleIDs) == 0 {
		return nil
	}
	query := `
		INSERT INTO tenant_modules (tenant_id, module_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT DO NOTHING`
	if _, err := r.q.Exec(ctx, query, tenantID, moduleIDs); err != nil {
		return wrapErr("insert tenant modules", err)
	}
	return nil
}
