package controller

import (
	"procureflow-be/internal/dto"
	"procureflow-be/internal/pkg/serverutils"
	"procureflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRoleController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	GetAllPermissions(ctx *fiber.Ctx) error
}

type roleController struct {
	service service.IRoleService
	checker serverutils.PermissionChecker
}

func NewRoleController(service service.IRoleService, checker serverutils.PermissionChecker) IRoleController {
	return &roleController{service: service, checker: checker}
}

func (c *roleController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/roles/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/permissions", serverutils.RequirePermission(c.checker, "roles", "read"), c.GetAllPermissions)
	h.Get("", serverutils.RequirePermission(c.checker, "roles", "read"), c.GetAll)
	h.Post("", serverutils.RequirePermission(c.checker, "roles", "create"), c.Create)
	h.Get(":id", serverutils.RequirePermission(c.checker, "roles", "read"), c.Show)
	h.Put(":id", serverutils.RequirePermission(c.checker, "roles", "update"), c.Update)
	h.Delete(":id", serverutils.RequirePermission(c.checker, "roles", "delete"), c.Delete)
}

func (c *roleController) Create(ctx *fiber.Ctx) error {
	actorIdStr := ctx.Locals("user_id").(string)
	actorId, _ := uuid.Parse(actorIdStr)

	var req dto.CreateRoleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), actorId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create role", res))
}

func (c *roleController) Show(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.service.Get(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get role", res))
}

func (c *roleController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all roles", res))
}

func (c *roleController) Update(ctx *fiber.Ctx) error {
	actorIdStr := ctx.Locals("user_id").(string)
	actorId, _ := uuid.Parse(actorIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateRoleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), id, actorId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update role", res))
}

func (c *roleController) Delete(ctx *fiber.Ctx) error {
	actorIdStr := ctx.Locals("user_id").(string)
	actorId, _ := uuid.Parse(actorIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.service.Delete(ctx.Context(), id, actorId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete role", nil))
}

func (c *roleController) GetAllPermissions(ctx *fiber.Ctx) error {
	res, err := c.service.ListPermissions(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all permissions", res))
}
