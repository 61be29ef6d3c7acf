package controller

import (
	"procureflow-be/internal/dto"
	"procureflow-be/internal/pkg/serverutils"
	"procureflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPurchaseRequestController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
	Decide(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type purchaseRequestController struct {
	service service.IPurchaseRequestService
	checker serverutils.PermissionChecker
}

func NewPurchaseRequestController(service service.IPurchaseRequestService, checker serverutils.PermissionChecker) IPurchaseRequestController {
	return &purchaseRequestController{service: service, checker: checker}
}

func (c *purchaseRequestController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/purchase-requests/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", serverutils.RequirePermission(c.checker, "purchase_requests", "read"), c.GetAll)
	h.Post("", serverutils.RequirePermission(c.checker, "purchase_requests", "create"), c.Create)
	h.Get(":id", serverutils.RequirePermission(c.checker, "purchase_requests", "read"), c.Show)
	h.Post(":id/submit", serverutils.RequirePermission(c.checker, "purchase_requests", "update"), c.Submit)
	h.Post(":id/decide", serverutils.RequirePermission(c.checker, "purchase_requests", "approve"), c.Decide)
	h.Delete(":id", serverutils.RequirePermission(c.checker, "purchase_requests", "delete"), c.Delete)
}

func (c *purchaseRequestController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreatePurchaseRequestRequest
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

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create purchase request", res))
}

func (c *purchaseRequestController) Show(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.service.Get(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get purchase request", res))
}

func (c *purchaseRequestController) GetAll(ctx *fiber.Ctx) error {
	status := ctx.Query("status")
	limit := ctx.QueryInt("limit")
	offset := ctx.QueryInt("offset")

	res, err := c.service.List(ctx.Context(), status, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all purchase requests", res))
}

func (c *purchaseRequestController) Submit(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.service.Submit(ctx.Context(), id, userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success submit purchase request", res))
}

func (c *purchaseRequestController) Decide(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.DecidePurchaseRequestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.Decide(ctx.Context(), id, userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success decide purchase request", res))
}

func (c *purchaseRequestController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.service.Delete(ctx.Context(), id, userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete purchase request", nil))
}
