package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comisiones-api/internal/application/dto"
	"github.com/jhoicas/comisiones-api/internal/application/sales"
)

// SaleHandler registro y ciclo de vida de ventas. Las rutas de administración exigen
// TENANT_ADMIN y las de autoservicio SALES_REP, ambas con COMMISSIONS_CORE.
type SaleHandler struct {
	ledger *sales.Ledger
}

// NewSaleHandler construye el handler.
func NewSaleHandler(ledger *sales.Ledger) *SaleHandler {
	return &SaleHandler{ledger: ledger}
}

// Create godoc
// @Summary      Registrar venta (administrador)
// @Description  La venta queda CONFIRMED con la comisión calculada con el porcentaje actual del vendedor.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "repId, amount, description"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.RecordByAdmin(c.UserContext(), GetCaller(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ventas de la empresa
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.ledger.ListForTenant(c.UserContext(), GetCaller(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar monto y descripción de una venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.UpdateSaleRequest  true  "amount, description"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.Update(c.UserContext(), GetCaller(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar venta pendiente
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/approve [post]
func (h *SaleHandler) Approve(c *fiber.Ctx) error {
	out, err := h.ledger.Approve(c.UserContext(), GetCaller(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/cancel [post]
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.ledger.Cancel(c.UserContext(), GetCaller(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateSelf godoc
// @Summary      Registrar venta propia (vendedor)
// @Description  La venta queda PENDING hasta que un administrador la apruebe.
// @Tags         self-service
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelfSaleRequest  true  "amount, description"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/self-service/sales [post]
func (h *SaleHandler) CreateSelf(c *fiber.Ctx) error {
	var in dto.SelfSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.RecordBySelf(c.UserContext(), GetCaller(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSelf godoc
// @Summary      Listar ventas propias
// @Tags         self-service
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/self-service/sales [get]
func (h *SaleHandler) ListSelf(c *fiber.Ctx) error {
	out, err := h.ledger.ListForSelf(c.UserContext(), GetCaller(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
