package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comisiones-api/internal/application/dto"
	"github.com/jhoicas/comisiones-api/internal/application/tenancy"
	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/pkg/jwt"
)

// LocalCaller clave en Fiber locals del *tenancy.Caller de la petición.
const LocalCaller = "caller"

// AuthMiddleware valida el Bearer Token, recarga el principal por el subject y deja
// el *tenancy.Caller en c.Locals. El rol y la empresa salen de la base, no del token.
func AuthMiddleware(jwtSecret string, resolver *tenancy.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthenticated(c, "MISSING_TOKEN", "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthenticated(c, "INVALID_TOKEN", "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return unauthenticated(c, "MISSING_TOKEN", "token vacío")
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return unauthenticated(c, "INVALID_TOKEN", "token inválido o expirado")
		}
		caller, err := resolver.Resolve(c.UserContext(), claims.Subject)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthenticated) {
				return unauthenticated(c, "INVALID_TOKEN", "token inválido o expirado")
			}
			return respondError(c, err)
		}
		c.Locals(LocalCaller, caller)
		return c.Next()
	}
}

// GetCaller devuelve el llamador resuelto por AuthMiddleware (nil si la ruta es pública).
func GetCaller(c *fiber.Ctx) *tenancy.Caller {
	caller, _ := c.Locals(LocalCaller).(*tenancy.Caller)
	return caller
}

func unauthenticated(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
