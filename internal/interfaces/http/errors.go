package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comisiones-api/internal/application/dto"
	"github.com/jhoicas/comisiones-api/internal/domain"
)

// LocalError guarda la causa de una respuesta 5xx para que RequestLogger la registre.
const LocalError = "request_error"

type errorMapping struct {
	target  error
	status  int
	code    string
	message string // vacío: se expone el mensaje del error de dominio
}

// El orden importa: la primera coincidencia con errors.Is gana.
var errorMappings = []errorMapping{
	{domain.ErrUnauthenticated, fiber.StatusUnauthorized, "UNAUTHENTICATED", "no autenticado"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"},
	{domain.ErrNoTenant, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", ""},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", ""},
	{domain.ErrInvalidStateTransition, fiber.StatusConflict, "INVALID_STATE_TRANSITION", ""},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS", ""},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", ""},
}

// respondError traduce un error de la capa de aplicación a status + dto.ErrorResponse.
// Los errores desconocidos responden 500 con un mensaje genérico; la causa queda en LocalError.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			msg := m.message
			if msg == "" {
				msg = err.Error()
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: msg})
		}
	}
	c.Locals(LocalError, err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// ErrorHandler para fiber.Config: rutas inexistentes, métodos no permitidos y panics recuperados.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: codeFor(fe.Code), Message: fe.Message})
	}
	return respondError(c, err)
}

func codeFor(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	default:
		if status >= 500 {
			return "INTERNAL"
		}
		return "ERROR"
	}
}
