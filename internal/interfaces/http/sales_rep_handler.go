package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comisiones-api/internal/application/dto"
	"github.com/jhoicas/comisiones-api/internal/application/salesrep"
)

// SalesRepHandler gestión de vendedores de la empresa.
type SalesRepHandler struct {
	svc *salesrep.Service
}

// NewSalesRepHandler construye el handler.
func NewSalesRepHandler(svc *salesrep.Service) *SalesRepHandler {
	return &SalesRepHandler{svc: svc}
}

// Create godoc
// @Summary      Crear vendedor
// @Description  Crea el usuario SALES_REP con una contraseña generada que se devuelve una sola vez.
// @Tags         sales-reps
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSalesRepRequest  true  "name, email, commissionPercentage"
// @Success      201   {object}  dto.SalesRepCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales-reps [post]
func (h *SalesRepHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSalesRepRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.Create(c.UserContext(), GetCaller(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar vendedores
// @Tags         sales-reps
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SalesRepResponse
// @Router       /api/sales-reps [get]
func (h *SalesRepHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext(), GetCaller(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener vendedor
// @Tags         sales-reps
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del vendedor"
// @Success      200  {object}  dto.SalesRepResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales-reps/{id} [get]
func (h *SalesRepHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.Get(c.UserContext(), GetCaller(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar porcentaje de comisión
// @Description  Solo afecta a ventas futuras o editadas.
// @Tags         sales-reps
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del vendedor"
// @Param        body  body  dto.UpdateSalesRepRequest  true  "commissionPercentage"
// @Success      200   {object}  dto.SalesRepResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales-reps/{id} [put]
func (h *SalesRepHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSalesRepRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.UpdatePercentage(c.UserContext(), GetCaller(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Details godoc
// @Summary      Detalle del vendedor con totales e historial mensual
// @Tags         sales-reps
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del vendedor"
// @Success      200  {object}  dto.SalesRepDetailsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales-reps/{id}/details [get]
func (h *SalesRepHandler) Details(c *fiber.Ctx) error {
	out, err := h.svc.Details(c.UserContext(), GetCaller(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
