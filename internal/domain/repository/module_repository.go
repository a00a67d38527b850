package repository

import (
	"context"

	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

// ModuleRepository puerto de lectura del catálogo de módulos.
type ModuleRepository interface {
	ListByStatus(ctx context.Context, status entity.ModuleStatus) ([]*entity.Module, error)
	ListDefaults(ctx context.Context) ([]*entity.Module, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Module, error)
}
