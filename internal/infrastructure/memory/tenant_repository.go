package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
)

var (
	_ repository.TenantRepository = (*TenantRepo)(nil)
	_ repository.ModuleRepository = (*ModuleRepo)(nil)
)

// TenantRepo empresas en memoria.
type TenantRepo struct {
	s    *Store
	inTx bool
}

// NewTenantRepository construye el adaptador.
func NewTenantRepository(s *Store) *TenantRepo {
	return &TenantRepo{s: s}
}

// Create persiste una empresa y, si trae módulos, su asociación.
func (r *TenantRepo) Create(_ context.Context, tenant *entity.Tenant) error {
	defer r.s.writeLock(r.inTx)()
	if _, ok := r.s.tenants[tenant.ID]; ok {
		return fmt.Errorf("insert tenant: id duplicado %s", tenant.ID)
	}
	t := *tenant
	t.Modules = nil
	r.s.tenants[t.ID] = t
	r.s.tenantModules[t.ID] = map[string]struct{}{}
	return nil
}

// GetWithModules devuelve la empresa con sus claves de módulo ya resueltas.
func (r *TenantRepo) GetWithModules(_ context.Context, id string) (*entity.Tenant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tenants[id]
	if !ok {
		return nil, nil
	}
	keys := make([]entity.ModuleKey, 0, len(r.s.tenantModules[id]))
	for moduleID := range r.s.tenantModules[id] {
		if m, ok := r.s.modules[moduleID]; ok {
			keys = append(keys, m.Key)
		}
	}
	t.Modules = entity.NewModuleSet(keys...)
	return &t, nil
}

// ReplaceModules reemplaza el conjunto de módulos activos.
func (r *TenantRepo) ReplaceModules(_ context.Context, tenantID string, moduleIDs []string) error {
	defer r.s.writeLock(r.inTx)()
	if _, ok := r.s.tenants[tenantID]; !ok {
		return fmt.Errorf("replace modules: empresa %s inexistente", tenantID)
	}
	set := make(map[string]struct{}, len(moduleIDs))
	for _, id := range moduleIDs {
		if _, ok := r.s.modules[id]; !ok {
			return fmt.Errorf("replace modules: módulo %s inexistente", id)
		}
		set[id] = struct{}{}
	}
	r.s.tenantModules[tenantID] = set
	return nil
}

// ModuleRepo catálogo de módulos en memoria.
type ModuleRepo struct {
	s *Store
}

// NewModuleRepository construye el adaptador.
func NewModuleRepository(s *Store) *ModuleRepo {
	return &ModuleRepo{s: s}
}

func (r *ModuleRepo) ListByStatus(_ context.Context, status entity.ModuleStatus) ([]*entity.Module, error) {
	return r.filter(func(m entity.Module) bool { return m.Status == status }), nil
}

func (r *ModuleRepo) ListDefaults(_ context.Context) ([]*entity.Module, error) {
	return r.filter(func(m entity.Module) bool { return m.IsDefault }), nil
}

func (r *ModuleRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.Module, error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	return r.filter(func(m entity.Module) bool {
		_, ok := want[m.ID]
		return ok
	}), nil
}

func (r *ModuleRepo) filter(keep func(entity.Module) bool) []*entity.Module {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*entity.Module{}
	for _, m := range r.s.modules {
		if keep(m) {
			m := m
			out = append(out, &m)
		}
	}
	sortBy(out, func(a, b *entity.Module) bool { return a.Name < b.Name })
	return out
}
