package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comisiones-api/internal/application/dto"
	"github.com/jhoicas/comisiones-api/internal/application/tenancy"
	"github.com/jhoicas/comisiones-api/internal/domain/authz"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

// accessAuthorizer es el contrato mínimo del middleware. Lo implementa *entitlement.Guard.
type accessAuthorizer interface {
	Authorize(ctx context.Context, caller *tenancy.Caller, req authz.Requirement) (bool, error)
}

// RequireAccess exige alguno de los roles y, si module no es vacío, ese módulo activo en la
// empresa del llamador. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 si no hay llamador en el contexto.
//   - 403 con el mismo cuerpo tanto si falta el rol como si falta el módulo.
//   - 500 si falla la lectura de módulos.
func RequireAccess(guard accessAuthorizer, module entity.ModuleKey, roles ...entity.Role) fiber.Handler {
	req := authz.Requirement{Roles: roles, Module: module}
	return func(c *fiber.Ctx) error {
		caller := GetCaller(c)
		if caller == nil {
			return unauthenticated(c, "UNAUTHENTICATED", "no autenticado")
		}
		ok, err := guard.Authorize(c.UserContext(), caller, req)
		if err != nil {
			return respondError(c, err)
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
		}
		return c.Next()
	}
}
