package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/comisiones-api/internal/application/auth"
	"github.com/jhoicas/comisiones-api/internal/application/dto"
	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
	"github.com/jhoicas/comisiones-api/pkg/clock"
	"github.com/jhoicas/comisiones-api/pkg/logger"
)

// TenantUseCase alta de empresas y gestión de sus módulos (solo super admin).
type TenantUseCase struct {
	tx      repository.TxRunner
	tenants repository.TenantRepository
	modules repository.ModuleRepository
	clock   clock.Clock
	log     *logger.Logger
}

// NewTenantUseCase construye el caso de uso.
func NewTenantUseCase(tx repository.TxRunner, tenants repository.TenantRepository, modules repository.ModuleRepository, clk clock.Clock, log *logger.Logger) *TenantUseCase {
	return &TenantUseCase{tx: tx, tenants: tenants, modules: modules, clock: clk, log: log.Component("tenant")}
}

// Create crea la empresa con los módulos por defecto y su primer TENANT_ADMIN, todo o nada.
func (uc *TenantUseCase) Create(ctx context.Context, in dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	name := strings.TrimSpace(in.Name)
	adminName := strings.TrimSpace(in.Admin.Name)
	adminEmail := entity.NormalizeEmail(in.Admin.Email)
	if name == "" || adminName == "" || adminEmail == "" || !strings.Contains(adminEmail, "@") {
		return nil, fmt.Errorf("%w: name, admin.name y admin.email son requeridos", domain.ErrInvalidInput)
	}
	if len(in.Admin.Password) < 8 {
		return nil, fmt.Errorf("%w: admin.password debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}
	defaults, err := uc.modules.ListDefaults(ctx)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Admin.Password)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	tenant := &entity.Tenant{
		ID:        uuid.New().String(),
		Name:      name,
		LegalName: strings.TrimSpace(in.LegalName),
		CreatedAt: now,
	}
	admin := &entity.Principal{
		ID:           uuid.New().String(),
		TenantID:     tenant.ID,
		Name:         adminName,
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         entity.RoleTenantAdmin,
		CreatedAt:    now,
	}
	moduleIDs := make([]string, 0, len(defaults))
	keys := make([]entity.ModuleKey, 0, len(defaults))
	for _, m := range defaults {
		moduleIDs = append(moduleIDs, m.ID)
		keys = append(keys, m.Key)
	}

	err = uc.tx.Run(ctx, func(tx repository.TxRepos) error {
		if err := tx.Tenants.Create(ctx, tenant); err != nil {
			return err
		}
		if err := tx.Tenants.ReplaceModules(ctx, tenant.ID, moduleIDs); err != nil {
			return err
		}
		if err := tx.Principals.Create(ctx, admin); err != nil {
			if errors.Is(err, domain.ErrEmailAlreadyExists) {
				return fmt.Errorf("%w: el email %s ya está registrado", domain.ErrConflict, adminEmail)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("tenant_id", tenant.ID).Int("modules", len(moduleIDs)).Msg("empresa creada")

	tenant.Modules = entity.NewModuleSet(keys...)
	out := toTenantResponse(tenant)
	out.Admin = toPrincipalResponse(admin)
	return out, nil
}

// ReplaceModules reemplaza el conjunto de módulos activos. IDs desconocidos responden
// domain.ErrInvalidInput; una empresa inexistente, domain.ErrNotFound.
func (uc *TenantUseCase) ReplaceModules(ctx context.Context, tenantID string, in dto.ReplaceModulesRequest) (*dto.TenantResponse, error) {
	if !entity.IsValidID(tenantID) {
		return nil, fmt.Errorf("empresa: %w", domain.ErrNotFound)
	}
	ids := dedupe(in.ModuleIDs)
	for _, id := range ids {
		if !entity.IsValidID(id) {
			return nil, fmt.Errorf("%w: moduleId %q no es un UUID", domain.ErrInvalidInput, id)
		}
	}
	found, err := uc.modules.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, fmt.Errorf("%w: moduleIds contiene módulos inexistentes", domain.ErrInvalidInput)
	}
	tenant, err := uc.tenants.GetWithModules(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, fmt.Errorf("empresa: %w", domain.ErrNotFound)
	}
	err = uc.tx.Run(ctx, func(tx repository.TxRepos) error {
		return tx.Tenants.ReplaceModules(ctx, tenantID, ids)
	})
	if err != nil {
		return nil, err
	}
	tenant, err = uc.tenants.GetWithModules(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("tenant_id", tenantID).Int("modules", len(ids)).Msg("módulos de empresa actualizados")
	return toTenantResponse(tenant), nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	return &dto.TenantResponse{
		ID:         t.ID,
		Name:       t.Name,
		LegalName:  t.LegalName,
		ModuleKeys: moduleKeyStrings(t.Modules.Keys()),
		CreatedAt:  t.CreatedAt,
	}
}
