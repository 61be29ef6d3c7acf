package controller

import (
	"procureflow-be/internal/dto"
	"procureflow-be/internal/pkg/serverutils"
	"procureflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IProcurementController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type procurementController struct {
	service service.IProcurementService
	checker serverutils.PermissionChecker
}

func NewProcurementController(service service.IProcurementService, checker serverutils.PermissionChecker) IProcurementController {
	return &procurementController{service: service, checker: checker}
}

func (c *procurementController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/procurements/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", serverutils.RequirePermission(c.checker, "procurements", "read"), c.GetAll)
	h.Post("", serverutils.RequirePermission(c.checker, "procurements", "create"), c.Create)
	h.Get(":id", serverutils.RequirePermission(c.checker, "procurements", "read"), c.Show)
	h.Put(":id", serverutils.RequirePermission(c.checker, "procurements", "update"), c.Update)
	h.Delete(":id", serverutils.RequirePermission(c.checker, "procurements", "delete"), c.Delete)
}

func (c *procurementController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateProcurementRequest
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

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create procurement", res))
}

func (c *procurementController) Show(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.service.Get(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get procurement", res))
}

func (c *procurementController) GetAll(ctx *fiber.Ctx) error {
	status := ctx.Query("status")
	limit := ctx.QueryInt("limit")
	offset := ctx.QueryInt("offset")

	res, err := c.service.List(ctx.Context(), status, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all procurements", res))
}

func (c *procurementController) Update(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateProcurementRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), id, userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update procurement", res))
}

func (c *procurementController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.service.Delete(ctx.Context(), id, userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete procurement", nil))
}
