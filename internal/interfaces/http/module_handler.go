package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comisiones-api/internal/application/usecase"
)

// ModuleHandler catálogo público de módulos.
type ModuleHandler struct {
	svc *usecase.ModuleService
}

// NewModuleHandler construye el handler.
func NewModuleHandler(svc *usecase.ModuleService) *ModuleHandler {
	return &ModuleHandler{svc: svc}
}

// List godoc
// @Summary      Catálogo de módulos
// @Description  Módulos en estado READY_FOR_PRODUCTION.
// @Tags         modules
// @Produce      json
// @Success      200  {array}  dto.ModuleResponse
// @Router       /api/modules [get]
func (h *ModuleHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.ListPublic(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
