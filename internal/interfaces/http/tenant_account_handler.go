package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comisiones-api/internal/application/dto"
	"github.com/jhoicas/comisiones-api/internal/application/usecase"
)

// TenantAccountHandler la empresa del TENANT_ADMIN autenticado.
type TenantAccountHandler struct {
	uc *usecase.TenantAccountUseCase
}

// NewTenantAccountHandler construye el handler.
func NewTenantAccountHandler(uc *usecase.TenantAccountUseCase) *TenantAccountHandler {
	return &TenantAccountHandler{uc: uc}
}

// Modules godoc
// @Summary      Módulos activos de mi empresa
// @Tags         tenant
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActiveModulesResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/tenant/modules [get]
func (h *TenantAccountHandler) Modules(c *fiber.Ctx) error {
	out, err := h.uc.ActiveModules(c.UserContext(), GetCaller(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Profile godoc
// @Summary      Datos de mi empresa
// @Tags         tenant
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TenantProfileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tenant/me [get]
func (h *TenantAccountHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.Profile(c.UserContext(), GetCaller(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateAdmin godoc
// @Summary      Crear otro administrador de mi empresa
// @Tags         tenant
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TenantAdminRequest  true  "name, email, password"
// @Success      201   {object}  dto.PrincipalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tenant/admins [post]
func (h *TenantAccountHandler) CreateAdmin(c *fiber.Ctx) error {
	var in dto.TenantAdminRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateAdmin(c.UserContext(), GetCaller(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
