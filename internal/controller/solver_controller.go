package controller

import (
	"problem-solver-be/internal/dto"
	"problem-solver-be/internal/pkg/serverutils"
	"problem-solver-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISolverController interface {
	RegisterRoutes(r fiber.Router)
	Subjects(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	SetSubject(ctx *fiber.Ctx) error
	SetQuestion(ctx *fiber.Ctx) error
	Solve(ctx *fiber.Ctx) error
	SelectSolution(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type solverController struct {
	service service.ISolverService
}

func NewSolverController(service service.ISolverService) ISolverController {
	return &solverController{service: service}
}

func (c *solverController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/solver/v1")
	h.Get("subjects", c.Subjects)
	h.Post("sessions", c.CreateSession)
	h.Get("sessions/:id", c.Show)
	h.Get("sessions/:id/history", c.History)
	h.Put("sessions/:id/subject", c.SetSubject)
	h.Put("sessions/:id/question", c.SetQuestion)
	h.Post("sessions/:id/solve", c.Solve)
	h.Put("sessions/:id/current", c.SelectSolution)
	h.Post("sessions/:id/cancel", c.Cancel)
	h.Delete("sessions/:id", c.Delete)
}

func (c *solverController) Subjects(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get subjects", c.service.Subjects(ctx.UserContext())))
}

func (c *solverController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.service.CreateSession(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create solver session", res))
}

func (c *solverController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.GetSession(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get solver session", res))
}

func (c *solverController) History(ctx *fiber.Ctx) error {
	res, err := c.service.GetHistory(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get solution history", res))
}

func (c *solverController) SetSubject(ctx *fiber.Ctx) error {
	var req dto.SetSubjectRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SetSubject(ctx.UserContext(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success set subject", res))
}

func (c *solverController) SetQuestion(ctx *fiber.Ctx) error {
	var req dto.SetQuestionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.SetQuestion(ctx.UserContext(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success set question", res))
}

// Solve answers 202 while the solution is still pending and 200 once it is
// in the response.
func (c *solverController) Solve(ctx *fiber.Ctx) error {
	var req dto.SolveRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}
	if ctx.QueryBool("wait") {
		req.Wait = true
	}

	res, err := c.service.Solve(ctx.UserContext(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	if res.Pending {
		return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Solve started", res))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success solve", res))
}

func (c *solverController) SelectSolution(ctx *fiber.Ctx) error {
	var req dto.SelectSolutionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SelectSolution(ctx.UserContext(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success select solution", res))
}

func (c *solverController) Cancel(ctx *fiber.Ctx) error {
	res, err := c.service.Cancel(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success cancel solve", res))
}

func (c *solverController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.DeleteSession(ctx.UserContext(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete solver session", nil))
}
