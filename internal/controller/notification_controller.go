package controller

import (
	"procureflow-be/internal/pkg/serverutils"
	"procureflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INotificationController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	MarkRead(ctx *fiber.Ctx) error
	MarkAllRead(ctx *fiber.Ctx) error
}

type notificationController struct {
	service service.INotificationService
}

func NewNotificationController(service service.INotificationService) INotificationController {
	return &notificationController{service: service}
}

func (c *notificationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notifications/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Put("/read-all", c.MarkAllRead)
	h.Put(":id/read", c.MarkRead)
}

func (c *notificationController) GetAll(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	limit := ctx.QueryInt("limit")
	offset := ctx.QueryInt("offset")

	res, err := c.service.List(ctx.Context(), userId, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get notifications", res))
}

func (c *notificationController) MarkRead(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.service.MarkRead(ctx.Context(), id, userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success mark notification read", nil))
}

func (c *notificationController) MarkAllRead(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	if err := c.service.MarkAllRead(ctx.Context(), userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success mark all notifications read", nil))
}
