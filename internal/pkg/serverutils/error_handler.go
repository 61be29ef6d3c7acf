package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"procureflow-be/internal/pkg/apperr"
	"procureflow-be/pkg/settlement"
)

// ErrorHandler translates service errors into the response envelope.
// Wire it as the fiber app's ErrorHandler so controllers can just
// `return err` for domain failures.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	case errors.Is(err, apperr.ErrNotFound):
		code = fiber.StatusNotFound
		message = err.Error()
	case errors.Is(err, apperr.ErrRoleNotFound):
		code = fiber.StatusForbidden
		message = "User role not found or invalid"
	case errors.Is(err, apperr.ErrInvalidCredentials):
		code = fiber.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, apperr.ErrAlreadyExists):
		code = fiber.StatusConflict
		message = err.Error()
	case errors.Is(err, apperr.ErrInvalidState):
		code = fiber.StatusConflict
		message = err.Error()
	case errors.Is(err, apperr.ErrValidation):
		code = fiber.StatusBadRequest
		message = err.Error()
	case errors.Is(err, settlement.ErrUnsupportedMethod):
		// Configuration drift, not a user mistake, but the caller should
		// still see which part of the request could not be served.
		code = fiber.StatusBadRequest
		message = err.Error()
	default:
		if pd, ok := apperr.IsPermissionDenied(err); ok {
			code = fiber.StatusForbidden
			message = "Not enough permissions. Required: " + pd.Resource + ":" + pd.Action
		}
	}

	return ctx.Status(code).JSON(ErrorResponse(code, message))
}
