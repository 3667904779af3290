package controller

import (
	"problem-solver-be/internal/dto"
	"problem-solver-be/internal/pkg/serverutils"
	"problem-solver-be/internal/service"
	"problem-solver-be/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	QuickQuestions(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	SetInput(ctx *fiber.Ctx) error
	UseQuickQuestion(ctx *fiber.Ctx) error
	Send(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Get("quick-questions", c.QuickQuestions)
	h.Post("sessions", c.CreateSession)
	h.Get("sessions/:id", c.Show)
	h.Put("sessions/:id/input", c.SetInput)
	h.Post("sessions/:id/quick-questions/:index", c.UseQuickQuestion)
	h.Post("sessions/:id/send", c.Send)
	h.Post("sessions/:id/cancel", c.Cancel)
	h.Delete("sessions/:id", c.Delete)
}

func (c *chatController) QuickQuestions(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get quick questions", c.service.QuickQuestions(ctx.UserContext())))
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.service.CreateSession(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create chat session", res))
}

func (c *chatController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.GetSession(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chat session", res))
}

func (c *chatController) SetInput(ctx *fiber.Ctx) error {
	var req dto.SetInputRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.SetInput(ctx.UserContext(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success set input", res))
}

func (c *chatController) UseQuickQuestion(ctx *fiber.Ctx) error {
	index, err := ctx.ParamsInt("index")
	if err != nil {
		return validation.New("index", "must be an integer")
	}

	res, err := c.service.UseQuickQuestion(ctx.UserContext(), ctx.Params("id"), index)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success use quick question", res))
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}
	if ctx.QueryBool("wait") {
		req.Wait = true
	}

	res, err := c.service.Send(ctx.UserContext(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	if res.Pending {
		return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Message sent", res))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *chatController) Cancel(ctx *fiber.Ctx) error {
	res, err := c.service.Cancel(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success cancel reply", res))
}

func (c *chatController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.DeleteSession(ctx.UserContext(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete chat session", nil))
}
