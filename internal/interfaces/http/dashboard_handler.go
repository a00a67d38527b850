package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/comisiones-api/internal/application/analytics"
)

// DashboardHandler maneja el endpoint del dashboard de comisiones.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get devuelve totales del mes en curso, ranking, top ventas, ventas recientes e historial mensual.
// GET /api/dashboard
//
// No requiere parámetros; el periodo se calcula en el servidor con APP_TIMEZONE.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboard(c.UserContext(), GetCaller(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
