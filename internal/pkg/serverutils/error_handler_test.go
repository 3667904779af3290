package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"problem-solver-be/internal/pkg/logger"
	"problem-solver-be/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBusy = errors.New("busy")

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger(), ErrorMapping{Target: errBusy, Status: fiber.StatusConflict}))

	app.Get("/validation", func(c *fiber.Ctx) error { return validation.New("question", "required") })
	app.Get("/busy", func(c *fiber.Ctx) error { return fmt.Errorf("solve: %w", errBusy) })
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })
	app.Get("/ok", func(c *fiber.Ctx) error { return c.JSON(SuccessResponse("fine", 1)) })

	cases := map[string]int{
		"/validation": fiber.StatusBadRequest,
		"/busy":       fiber.StatusConflict,
		"/missing":    fiber.StatusNotFound,
		"/boom":       fiber.StatusInternalServerError,
		"/ok":         fiber.StatusOK,
	}
	for path, want := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, path)

		var body Response[any]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, want == fiber.StatusOK, body.Success, path)
	}
}

func TestValidateRequest(t *testing.T) {
	type req struct {
		SolutionId string `validate:"required"`
	}

	err := ValidateRequest(req{})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "solutionid", verr.Field)

	assert.NoError(t, ValidateRequest(req{SolutionId: "x"}))
}
