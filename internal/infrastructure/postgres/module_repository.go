package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
)

var _ repository.ModuleRepository = (*ModuleRepo)(nil)

// ModuleRepo catálogo de módulos sobre PostgreSQL.
type ModuleRepo struct {
	q Querier
}

// NewModuleRepository construye el adaptador.
func NewModuleRepository(q Querier) *ModuleRepo {
	return &ModuleRepo{q: q}
}

const moduleColumns = `id, name, key, status, description, monthly_price, is_default, created_at`

func (r *ModuleRepo) ListByStatus(ctx context.Context, status entity.ModuleStatus) ([]*entity.Module, error) {
	return r.list(ctx, `SELECT `+moduleColumns+` FROM modules WHERE status = $1 ORDER BY name`, string(status))
}

func (r *ModuleRepo) ListDefaults(ctx context.Context) ([]*entity.Module, error) {
	return r.list(ctx, `SELECT `+moduleColumns+` FROM modules WHERE is_default ORDER BY name`)
}

func (r *ModuleRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Module, error) {
	return r.list(ctx, `SELECT `+moduleColumns+` FROM modules WHERE id = ANY($1::uuid[]) ORDER BY name`, ids)
}

func (r *ModuleRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Module, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()
	out := []*entity.Module{}
	for rows.Next() {
		var m entity.Module
		if err := rows.Scan(&m.ID, &m.Name, &m.Key, &m.Status, &m.Description, &m.MonthlyPrice, &m.IsDefault, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
