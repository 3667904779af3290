package controller

import (
	"problem-solver-be/internal/pkg/serverutils"
	"problem-solver-be/internal/service"
	"problem-solver-be/pkg/chat"
	"problem-solver-be/pkg/solver"

	"github.com/gofiber/fiber/v2"
)

// ErrorMappings lists the domain errors with a dedicated HTTP status.
func ErrorMappings() []serverutils.ErrorMapping {
	return []serverutils.ErrorMapping{
		{Target: service.ErrSessionNotFound, Status: fiber.StatusNotFound},
		{Target: solver.ErrPending, Status: fiber.StatusConflict},
		{Target: chat.ErrPending, Status: fiber.StatusConflict},
	}
}
