package usecase

import (
	"context"

	"github.com/jhoicas/comisiones-api/internal/application/dto"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
)

// ModuleService catálogo público de módulos SaaS.
type ModuleService struct {
	modules repository.ModuleRepository
}

// NewModuleService construye el servicio de módulos.
func NewModuleService(modules repository.ModuleRepository) *ModuleService {
	return &ModuleService{modules: modules}
}

// ListPublic módulos listos para venderse (READY_FOR_PRODUCTION).
func (s *ModuleService) ListPublic(ctx context.Context) ([]dto.ModuleResponse, error) {
	modules, err := s.modules.ListByStatus(ctx, entity.ModuleStatusReadyForProduction)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ModuleResponse, 0, len(modules))
	for _, m := range modules {
		out = append(out, dto.ModuleResponse{
			ID:           m.ID,
			Name:         m.Name,
			Key:          string(m.Key),
			Description:  m.Description,
			MonthlyPrice: m.MonthlyPrice,
		})
	}
	return out, nil
}
