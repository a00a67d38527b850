package repository

import (
	"context"

	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

// PrincipalRepository define el puerto de persistencia para identidades de login.
type PrincipalRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si el email ya está en uso.
	Create(ctx context.Context, principal *entity.Principal) error
	// GetByEmail devuelve (nil, nil) si no existe.
	GetByEmail(ctx context.Context, email string) (*entity.Principal, error)
	// CountByTenantAndRole cantidad de identidades de la empresa con ese rol.
	CountByTenantAndRole(ctx context.Context, tenantID string, role entity.Role) (int64, error)
}
