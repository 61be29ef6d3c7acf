package controller

import (
	"procureflow-be/internal/dto"
	"procureflow-be/internal/pkg/serverutils"
	"procureflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Approve(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	Process(ctx *fiber.Ctx) error
	CheckStatus(ctx *fiber.Ctx) error
	GetBalances(ctx *fiber.Ctx) error
}

type paymentController struct {
	service service.IPaymentService
	checker serverutils.PermissionChecker
}

func NewPaymentController(service service.IPaymentService, checker serverutils.PermissionChecker) IPaymentController {
	return &paymentController{service: service, checker: checker}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payments/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/balances", serverutils.RequirePermission(c.checker, "payments", "read"), c.GetBalances)
	h.Get("", serverutils.RequirePermission(c.checker, "payments", "read"), c.GetAll)
	h.Post("", serverutils.RequirePermission(c.checker, "payments", "create"), c.Create)
	h.Get(":id", serverutils.RequirePermission(c.checker, "payments", "read"), c.Show)
	h.Put(":id", serverutils.RequirePermission(c.checker, "payments", "update"), c.Update)
	h.Post(":id/approve", serverutils.RequirePermission(c.checker, "payments", "approve"), c.Approve)
	h.Post(":id/cancel", serverutils.RequirePermission(c.checker, "payments", "update"), c.Cancel)
	h.Post(":id/process", serverutils.RequirePermission(c.checker, "payments", "process"), c.Process)
	h.Get(":id/status", serverutils.RequirePermission(c.checker, "payments", "read"), c.CheckStatus)
}

func (c *paymentController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreatePaymentRequest
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

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create payment", res))
}

func (c *paymentController) Show(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.service.Get(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get payment", res))
}

func (c *paymentController) GetAll(ctx *fiber.Ctx) error {
	var query dto.ListPaymentsQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}

	res, err := c.service.List(ctx.Context(), &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all payments", res))
}

func (c *paymentController) Update(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdatePaymentRequest
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

	return ctx.JSON(serverutils.SuccessResponse("Success update payment", res))
}

func (c *paymentController) Approve(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.service.Approve(ctx.Context(), id, userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success approve payment", res))
}

func (c *paymentController) Cancel(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.service.Cancel(ctx.Context(), id, userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success cancel payment", res))
}

func (c *paymentController) Process(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.service.Process(ctx.Context(), id, userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Payment processed", res))
}

func (c *paymentController) CheckStatus(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.service.CheckStatus(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success check payment status", res))
}

func (c *paymentController) GetBalances(ctx *fiber.Ctx) error {
	res, err := c.service.GetBalances(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get adapter balances", res))
}
