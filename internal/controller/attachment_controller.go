package controller

import (
	"fmt"

	"procureflow-be/internal/pkg/serverutils"
	"procureflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAttachmentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type attachmentController struct {
	service service.IAttachmentService
	checker serverutils.PermissionChecker
}

func NewAttachmentController(service service.IAttachmentService, checker serverutils.PermissionChecker) IAttachmentController {
	return &attachmentController{service: service, checker: checker}
}

func (c *attachmentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/attachments/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", serverutils.RequirePermission(c.checker, "attachments", "create"), c.Upload)
	h.Get("", serverutils.RequirePermission(c.checker, "attachments", "read"), c.GetAll)
	h.Get(":id", serverutils.RequirePermission(c.checker, "attachments", "read"), c.Download)
	h.Delete(":id", serverutils.RequirePermission(c.checker, "attachments", "delete"), c.Delete)
}

func (c *attachmentController) Upload(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	resourceType := ctx.FormValue("resource_type")
	resourceId, err := uuid.Parse(ctx.FormValue("resource_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid resource_id"))
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Missing file"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	res, err := c.service.Upload(ctx.Context(), userId, resourceType, resourceId,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size, file)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success upload attachment", res))
}

func (c *attachmentController) GetAll(ctx *fiber.Ctx) error {
	resourceType := ctx.Query("resource_type")
	resourceId, err := uuid.Parse(ctx.Query("resource_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid resource_id"))
	}

	res, err := c.service.List(ctx.Context(), resourceType, resourceId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get attachments", res))
}

func (c *attachmentController) Download(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	meta, reader, err := c.service.Open(ctx.Context(), id)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, meta.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, meta.FileName))
	return ctx.SendStream(reader, int(meta.SizeBytes))
}

func (c *attachmentController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.service.Delete(ctx.Context(), id, userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete attachment", nil))
}
