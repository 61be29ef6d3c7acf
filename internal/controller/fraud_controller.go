package controller

import (
	"procureflow-be/internal/dto"
	"procureflow-be/internal/pkg/serverutils"
	"procureflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFraudController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Review(ctx *fiber.Ctx) error
}

type fraudController struct {
	service service.IFraudService
	checker serverutils.PermissionChecker
}

func NewFraudController(service service.IFraudService, checker serverutils.PermissionChecker) IFraudController {
	return &fraudController{service: service, checker: checker}
}

func (c *fraudController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/fraud-alerts/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", serverutils.RequirePermission(c.checker, "fraud_alerts", "read"), c.GetAll)
	h.Get(":id", serverutils.RequirePermission(c.checker, "fraud_alerts", "read"), c.Show)
	h.Put(":id/review", serverutils.RequirePermission(c.checker, "fraud_alerts", "review"), c.Review)
}

func (c *fraudController) GetAll(ctx *fiber.Ctx) error {
	var query dto.ListFraudAlertsQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}

	res, err := c.service.ListAlerts(ctx.Context(), &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all fraud alerts", res))
}

func (c *fraudController) Show(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.service.GetAlert(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get fraud alert", res))
}

func (c *fraudController) Review(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.ReviewFraudAlertRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ReviewAlert(ctx.Context(), id, userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success review fraud alert", res))
}
