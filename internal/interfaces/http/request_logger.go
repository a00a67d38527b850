package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comisiones-api/pkg/logger"
)

// RequestLogger registra método, ruta, estado, latencia, request id y empresa (si se resolvió) de cada petición.
// Las respuestas 5xx se registran como error junto con la causa guardada en LocalError.
func RequestLogger(log *logger.Logger) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler escriba la respuesta antes de leer el estado
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			err = nil
		}
		status := c.Response().StatusCode()

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
			if cause, ok := c.Locals(LocalError).(error); ok {
				ev = ev.Err(cause)
			}
		}
		ev = ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start))
		if rid := c.GetRespHeader(fiber.HeaderXRequestID); rid != "" {
			ev = ev.Str("request_id", rid)
		}
		if caller := GetCaller(c); caller != nil {
			if tenantID, terr := caller.TenantID(); terr == nil {
				ev = ev.Str("tenant_id", tenantID)
			}
		}
		ev.Msg("request")
		return err
	}
}
