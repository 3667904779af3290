package serverutils

import (
	"errors"

	"problem-solver-be/internal/pkg/logger"
	"problem-solver-be/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// ErrorMapping assigns an HTTP status to every error matching Target via
// errors.Is.
type ErrorMapping struct {
	Target error
	Status int
}

// ErrorHandlerMiddleware turns errors returned by handlers into the standard
// error envelope. Validation errors become 400, fiber errors keep their own
// code, mapped errors get their status and anything else is a 500.
func ErrorHandlerMiddleware(log logger.ILogger, mappings ...ErrorMapping) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := StatusFor(err, mappings...)
		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
		}
		return ctx.Status(status).JSON(ErrorResponse(status, err.Error()))
	}
}

func StatusFor(err error, mappings ...ErrorMapping) int {
	if validation.IsValidation(err) {
		return fiber.StatusBadRequest
	}
	for _, m := range mappings {
		if errors.Is(err, m.Target) {
			return m.Status
		}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
