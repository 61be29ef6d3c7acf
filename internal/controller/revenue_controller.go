package controller

import (
	"procureflow-be/internal/dto"
	"procureflow-be/internal/pkg/serverutils"
	"procureflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRevenueController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type revenueController struct {
	service service.IRevenueService
	checker serverutils.PermissionChecker
}

func NewRevenueController(service service.IRevenueService, checker serverutils.PermissionChecker) IRevenueController {
	return &revenueController{service: service, checker: checker}
}

func (c *revenueController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/revenues/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", serverutils.RequirePermission(c.checker, "revenues", "read"), c.GetAll)
	h.Post("", serverutils.RequirePermission(c.checker, "revenues", "create"), c.Create)
	h.Get(":id", serverutils.RequirePermission(c.checker, "revenues", "read"), c.Show)
	h.Delete(":id", serverutils.RequirePermission(c.checker, "revenues", "delete"), c.Delete)
}

func (c *revenueController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateRevenueRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create revenue", res))
}

func (c *revenueController) Show(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.service.Get(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get revenue", res))
}

func (c *revenueController) GetAll(ctx *fiber.Ctx) error {
	category := ctx.Query("category")
	limit := ctx.QueryInt("limit")
	offset := ctx.QueryInt("offset")

	res, err := c.service.List(ctx.Context(), category, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all revenues", res))
}

func (c *revenueController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.service.Delete(ctx.Context(), id, userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete revenue", nil))
}
