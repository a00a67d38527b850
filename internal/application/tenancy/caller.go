// Package tenancy resuelve, una vez por request, la identidad completa del llamador
// a partir del subject de un token ya verificado.
package tenancy

import (
	"context"
	"fmt"

	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
)

// Caller identidad del llamador de un request. Se pasa explícitamente a los casos de uso.
type Caller struct {
	principal *entity.Principal
}

// NewCaller envuelve un principal ya cargado.
func NewCaller(p *entity.Principal) *Caller {
	return &Caller{principal: p}
}

// Principal devuelve el registro fresco del llamador.
func (c *Caller) Principal() *entity.Principal {
	if c == nil {
		return nil
	}
	return c.principal
}

// Role rol vigente según la base, no según el token.
func (c *Caller) Role() entity.Role {
	if c == nil || c.principal == nil {
		return ""
	}
	return c.principal.Role
}

// TenantID devuelve la empresa del llamador o domain.ErrNoTenant (super admin).
func (c *Caller) TenantID() (string, error) {
	if c == nil || c.principal == nil {
		return "", domain.ErrUnauthenticated
	}
	if !c.principal.HasTenant() {
		return "", domain.ErrNoTenant
	}
	return c.principal.TenantID, nil
}

// Resolver carga el principal por el subject (email) del token.
type Resolver struct {
	principals repository.PrincipalRepository
}

// NewResolver construye el resolver.
func NewResolver(principals repository.PrincipalRepository) *Resolver {
	return &Resolver{principals: principals}
}

// Resolve devuelve domain.ErrUnauthenticated si el subject ya no existe.
func (r *Resolver) Resolve(ctx context.Context, subject string) (*Caller, error) {
	if subject == "" {
		return nil, domain.ErrUnauthenticated
	}
	p, err := r.principals.GetByEmail(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("resolve caller: %w", err)
	}
	if p == nil {
		return nil, domain.ErrUnauthenticated
	}
	return NewCaller(p), nil
}
