package controller

import (
	"fmt"
	"time"

	"procureflow-be/internal/pkg/serverutils"
	"procureflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAnalyticsController interface {
	RegisterRoutes(r fiber.Router)
	Dashboard(ctx *fiber.Ctx) error
	ExportPayments(ctx *fiber.Ctx) error
}

type analyticsController struct {
	service service.IAnalyticsService
	checker serverutils.PermissionChecker
}

func NewAnalyticsController(service service.IAnalyticsService, checker serverutils.PermissionChecker) IAnalyticsController {
	return &analyticsController{service: service, checker: checker}
}

func (c *analyticsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/analytics/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/dashboard", serverutils.RequirePermission(c.checker, "analytics", "read"), c.Dashboard)
	h.Get("/export/payments", serverutils.RequirePermission(c.checker, "analytics", "export"), c.ExportPayments)
}

func (c *analyticsController) Dashboard(ctx *fiber.Ctx) error {
	res, err := c.service.Dashboard(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get dashboard", res))
}

func (c *analyticsController) ExportPayments(ctx *fiber.Ctx) error {
	fileName := fmt.Sprintf("payments-%s.csv", time.Now().Format("2006-01-02"))
	ctx.Set(fiber.HeaderContentType, "text/csv")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, fileName))

	return c.service.ExportPaymentsCSV(ctx.Context(), ctx.Response().BodyWriter())
}
