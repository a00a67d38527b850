package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/comisiones-api/internal/application/dto"
	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
	"github.com/jhoicas/comisiones-api/pkg/clock"
	"github.com/jhoicas/comisiones-api/pkg/jwt"
	"github.com/jhoicas/comisiones-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// ModuleKeyReader claves de módulo activas de una empresa (lo implementa entitlement.Guard).
type ModuleKeyReader interface {
	ModuleKeys(ctx context.Context, tenantID string) ([]entity.ModuleKey, error)
}

// AuthUseCase login y alta del super admin inicial.
type AuthUseCase struct {
	principals repository.PrincipalRepository
	modules    ModuleKeyReader
	jwtCfg     JWTConfig
	clock      clock.Clock
	log        *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(principals repository.PrincipalRepository, modules ModuleKeyReader, jwtCfg JWTConfig, clk clock.Clock, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{principals: principals, modules: modules, jwtCfg: jwtCfg, clock: clk, log: log.Component("auth")}
}

// Login verifica email/password y devuelve el token junto con las claves de módulo de la empresa.
// Email inexistente y password incorrecta responden igual: domain.ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := entity.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y password son requeridos", domain.ErrInvalidInput)
	}
	p, err := uc.principals.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, p.Email, p.Name, string(p.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	keys, err := uc.modules.ModuleKeys(ctx, p.TenantID)
	if err != nil {
		return nil, err
	}
	out := &dto.LoginResponse{Token: token, ModuleKeys: make([]string, len(keys))}
	for i, k := range keys {
		out.ModuleKeys[i] = string(k)
	}
	return out, nil
}

// BootstrapInput datos del SUPER_ADMIN a sembrar.
type BootstrapInput struct {
	Email    string
	Password string
	Name     string
}

// BootstrapSuperAdmin crea el SUPER_ADMIN si no existe un principal con ese email.
// Devuelve true si lo creó.
func (uc *AuthUseCase) BootstrapSuperAdmin(ctx context.Context, in BootstrapInput) (bool, error) {
	email := entity.NormalizeEmail(in.Email)
	if email == "" || len(in.Password) < 8 {
		return false, fmt.Errorf("%w: bootstrap requiere email y password de al menos 8 caracteres", domain.ErrInvalidInput)
	}
	existing, err := uc.principals.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return false, err
	}
	name := in.Name
	if name == "" {
		name = "Super Admin"
	}
	p := &entity.Principal{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleSuperAdmin,
		CreatedAt:    uc.clock.Now(),
	}
	if err := uc.principals.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return false, nil
		}
		return false, err
	}
	uc.log.Info().Str("email", email).Msg("super admin creado")
	return true, nil
}

// HashPassword bcrypt con el costo por defecto.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
