package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jhoicas/comisiones-api/internal/application/auth"
	"github.com/jhoicas/comisiones-api/internal/application/dto"
	"github.com/jhoicas/comisiones-api/internal/application/tenancy"
	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
	"github.com/jhoicas/comisiones-api/pkg/clock"
	"github.com/jhoicas/comisiones-api/pkg/logger"
)

// TenantAccountUseCase lo que un TENANT_ADMIN consulta y administra de su propia empresa.
type TenantAccountUseCase struct {
	tenants    repository.TenantRepository
	principals repository.PrincipalRepository
	modules    auth.ModuleKeyReader
	clock      clock.Clock
	log        *logger.Logger
}

// NewTenantAccountUseCase construye el caso de uso. modules es la misma fuente que usa la autorización.
func NewTenantAccountUseCase(tenants repository.TenantRepository, principals repository.PrincipalRepository, modules auth.ModuleKeyReader, clk clock.Clock, log *logger.Logger) *TenantAccountUseCase {
	return &TenantAccountUseCase{tenants: tenants, principals: principals, modules: modules, clock: clk, log: log.Component("tenant_account")}
}

// ActiveModules claves de módulo activas de la empresa del llamador, ordenadas.
func (uc *TenantAccountUseCase) ActiveModules(ctx context.Context, caller *tenancy.Caller) (*dto.ActiveModulesResponse, error) {
	tenantID, err := caller.TenantID()
	if err != nil {
		return nil, err
	}
	keys, err := uc.modules.ModuleKeys(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &dto.ActiveModulesResponse{ModuleKeys: moduleKeyStrings(keys)}, nil
}

// Profile datos de la empresa del llamador con la cantidad de administradores y vendedores.
func (uc *TenantAccountUseCase) Profile(ctx context.Context, caller *tenancy.Caller) (*dto.TenantProfileResponse, error) {
	tenantID, err := caller.TenantID()
	if err != nil {
		return nil, err
	}
	tenant, err := uc.tenants.GetWithModules(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, fmt.Errorf("empresa: %w", domain.ErrNotFound)
	}
	admins, err := uc.principals.CountByTenantAndRole(ctx, tenantID, entity.RoleTenantAdmin)
	if err != nil {
		return nil, err
	}
	reps, err := uc.principals.CountByTenantAndRole(ctx, tenantID, entity.RoleSalesRep)
	if err != nil {
		return nil, err
	}
	return &dto.TenantProfileResponse{
		ID:            tenant.ID,
		Name:          tenant.Name,
		LegalName:     tenant.LegalName,
		ModuleKeys:    moduleKeyStrings(tenant.Modules.Keys()),
		AdminCount:    admins,
		SalesRepCount: reps,
		CreatedAt:     tenant.CreatedAt,
	}, nil
}

// CreateAdmin da de alta otro TENANT_ADMIN en la empresa del llamador.
// Un email ya registrado responde domain.ErrConflict.
func (uc *TenantAccountUseCase) CreateAdmin(ctx context.Context, caller *tenancy.Caller, in dto.TenantAdminRequest) (*dto.PrincipalResponse, error) {
	tenantID, err := caller.TenantID()
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	email := entity.NormalizeEmail(in.Email)
	if err := validateAdmin(name, email, in.Password); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	admin := &entity.Principal{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleTenantAdmin,
		CreatedAt:    uc.clock.Now(),
	}
	if err := uc.principals.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, fmt.Errorf("%w: el email %s ya está registrado", domain.ErrConflict, email)
		}
		return nil, err
	}
	uc.log.Info().Str("tenant_id", tenantID).Str("principal_id", admin.ID).Msg("administrador creado")
	return toPrincipalResponse(admin), nil
}

// validateAdmin reglas comunes a todo TENANT_ADMIN nuevo.
func validateAdmin(name, email, password string) error {
	var errs []error
	if n := utf8.RuneCountInString(name); n < 3 || n > 100 {
		errs = append(errs, errors.New("name debe tener entre 3 y 100 caracteres"))
	}
	if email == "" || !strings.Contains(email, "@") || len(email) > 100 {
		errs = append(errs, errors.New("email inválido"))
	}
	if len(password) < 8 || len(password) > 72 {
		errs = append(errs, errors.New("password debe tener entre 8 y 72 caracteres"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	return nil
}

func toPrincipalResponse(p *entity.Principal) *dto.PrincipalResponse {
	return &dto.PrincipalResponse{
		ID:        p.ID,
		TenantID:  p.TenantID,
		Name:      p.Name,
		Email:     p.Email,
		Role:      string(p.Role),
		CreatedAt: p.CreatedAt,
	}
}

func moduleKeyStrings(keys []entity.ModuleKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}
