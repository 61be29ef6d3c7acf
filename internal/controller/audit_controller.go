package controller

import (
	"procureflow-be/internal/dto"
	"procureflow-be/internal/pkg/serverutils"
	"procureflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuditController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
}

type auditController struct {
	service service.IAuditService
	checker serverutils.PermissionChecker
}

func NewAuditController(service service.IAuditService, checker serverutils.PermissionChecker) IAuditController {
	return &auditController{service: service, checker: checker}
}

func (c *auditController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/audit-logs/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", serverutils.RequirePermission(c.checker, "audit_logs", "read"), c.GetAll)
}

func (c *auditController) GetAll(ctx *fiber.Ctx) error {
	var query dto.ListAuditLogsQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}

	res, err := c.service.List(ctx.Context(), &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get audit logs", res))
}
