package controller

import (
	"procureflow-be/internal/dto"
	"procureflow-be/internal/pkg/serverutils"
	"procureflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	AssignRole(ctx *fiber.Ctx) error
}

type userController struct {
	service service.IUserService
	checker serverutils.PermissionChecker
}

func NewUserController(service service.IUserService, checker serverutils.PermissionChecker) IUserController {
	return &userController{service: service, checker: checker}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/users/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", serverutils.RequirePermission(c.checker, "users", "read"), c.GetAll)
	h.Post("", serverutils.RequirePermission(c.checker, "users", "create"), c.Create)
	h.Get(":id", serverutils.RequirePermission(c.checker, "users", "read"), c.Show)
	h.Put(":id", serverutils.RequirePermission(c.checker, "users", "update"), c.Update)
	h.Delete(":id", serverutils.RequirePermission(c.checker, "users", "delete"), c.Delete)
	h.Put(":id/role", serverutils.RequirePermission(c.checker, "users", "update"), c.AssignRole)
}

func (c *userController) Create(ctx *fiber.Ctx) error {
	actorIdStr := ctx.Locals("user_id").(string)
	actorId, _ := uuid.Parse(actorIdStr)

	var req dto.CreateUserRequest
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

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create user", res))
}

func (c *userController) Show(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.service.Get(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get user", res))
}

func (c *userController) GetAll(ctx *fiber.Ctx) error {
	var query dto.ListUsersQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}

	res, err := c.service.List(ctx.Context(), &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all users", res))
}

func (c *userController) Update(ctx *fiber.Ctx) error {
	actorIdStr := ctx.Locals("user_id").(string)
	actorId, _ := uuid.Parse(actorIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateUserRequest
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

	return ctx.JSON(serverutils.SuccessResponse("Success update user", res))
}

func (c *userController) Delete(ctx *fiber.Ctx) error {
	actorIdStr := ctx.Locals("user_id").(string)
	actorId, _ := uuid.Parse(actorIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.service.Delete(ctx.Context(), id, actorId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete user", nil))
}

func (c *userController) AssignRole(ctx *fiber.Ctx) error {
	actorIdStr := ctx.Locals("user_id").(string)
	actorId, _ := uuid.Parse(actorIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.AssignRoleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AssignRole(ctx.Context(), id, actorId, req.RoleId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success assign role", res))
}
