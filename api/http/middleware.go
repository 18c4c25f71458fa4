package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/artem13815/places/pkg/apperr"
	"github.com/artem13815/places/pkg/logging"
)

// AccessLog writes one zerolog line per request.
func AccessLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if ae, ok := apperr.As(err); ok {
			status = ae.Status()
		}
		reqID, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
		logging.Info().
			Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http request")
		return err
	}
}
