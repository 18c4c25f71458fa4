package presenter

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/places/pkg/apperr"
	"github.com/artem13815/places/pkg/logging"
)

const unknownErrorMessage = "An unknown error occurred!"

type ErrorResponse struct {
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// ErrorHandler is the single place where returned errors become responses.
// Plug it into fiber.Config.ErrorHandler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	message := unknownErrorMessage

	var fe *fiber.Error
	if ae, ok := apperr.As(err); ok {
		status = ae.Status()
		if ae.Message != "" {
			message = ae.Message
		}
	} else if errors.As(err, &fe) {
		status = fe.Code
		message = fe.Message
	}

	if status >= http.StatusInternalServerError {
		logging.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Msg("request failed")
	}
	return Error(c, status, message)
}
