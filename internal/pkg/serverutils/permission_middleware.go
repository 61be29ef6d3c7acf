package serverutils

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// PermissionChecker decides whether a user may perform resource:action.
// Implemented by the authorization service; declared here so middleware
// does not depend on the service package.
type PermissionChecker interface {
	Check(ctx context.Context, userID uuid.UUID, resource, action string) error
}

// RequirePermission guards a route with a resource:action check. It must run
// after JwtMiddleware so ctx.Locals("user_id") is populated.
func RequirePermission(checker PermissionChecker, resource, action string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userIdStr, ok := ctx.Locals("user_id").(string)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
		}
		userId, err := uuid.Parse(userIdStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
		}

		if err := checker.Check(ctx.Context(), userId, resource, action); err != nil {
			return err
		}
		return ctx.Next()
	}
}
