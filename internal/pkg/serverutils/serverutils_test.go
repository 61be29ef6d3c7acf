package serverutils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"procureflow-be/internal/pkg/apperr"
	"procureflow-be/pkg/settlement"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
}

func signToken(t *testing.T, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestErrorHandlerMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{
			name:        "not found",
			err:         apperr.ErrNotFound,
			wantCode:    404,
			wantMessage: "resource not found",
		},
		{
			name:        "role not found",
			err:         apperr.ErrRoleNotFound,
			wantCode:    403,
			wantMessage: "User role not found or invalid",
		},
		{
			name:        "permission denied names the permission",
			err:         apperr.PermissionDenied("payments", "approve"),
			wantCode:    403,
			wantMessage: "Not enough permissions. Required: payments:approve",
		},
		{
			name:        "invalid credentials",
			err:         apperr.ErrInvalidCredentials,
			wantCode:    401,
			wantMessage: "invalid email or password",
		},
		{
			name:        "conflict on invalid state",
			err:         fmt.Errorf("%w: payment is completed", apperr.ErrInvalidState),
			wantCode:    409,
			wantMessage: "operation not allowed in current state: payment is completed",
		},
		{
			name:        "validation",
			err:         fmt.Errorf("%w: amount must be positive", apperr.ErrValidation),
			wantCode:    400,
			wantMessage: "validation failed: amount must be positive",
		},
		{
			name:        "unsupported payment method",
			err:         settlement.ErrUnsupportedMethod,
			wantCode:    400,
			wantMessage: "settlement: unsupported payment method",
		},
		{
			name:        "unknown errors stay opaque",
			err:         fmt.Errorf("pq: connection refused"),
			wantCode:    500,
			wantMessage: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp()
			app.Get("/boom", func(c *fiber.Ctx) error {
				return tt.err
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil), -1)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)

			var body Response[any]
			json.NewDecoder(resp.Body).Decode(&body)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestJwtMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	app := newTestApp()
	app.Get("/me", JwtMiddleware, func(c *fiber.Ctx) error {
		return c.JSON(SuccessResponse("ok", c.Locals("user_id")))
	})

	t.Run("missing token", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest("GET", "/me", nil), -1)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		resp, _ := app.Test(req, -1)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("valid token populates user_id", func(t *testing.T) {
		userId := uuid.NewString()
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, userId))

		resp, _ := app.Test(req, -1)
		assert.Equal(t, 200, resp.StatusCode)

		var body Response[string]
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, userId, body.Data)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": uuid.NewString()})
		signed, _ := token.SignedString([]byte("wrong-secret"))

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		resp, _ := app.Test(req, -1)
		assert.Equal(t, 401, resp.StatusCode)
	})
}

// allowListChecker grants only the pairs it was built with.
type allowListChecker struct {
	allowed map[string]bool
}

func (c *allowListChecker) Check(ctx context.Context, userID uuid.UUID, resource, action string) error {
	if c.allowed[resource+":"+action] {
		return nil
	}
	return apperr.PermissionDenied(resource, action)
}

func TestRequirePermission(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	checker := &allowListChecker{allowed: map[string]bool{"payments:read": true}}

	app := newTestApp()
	app.Get("/payments", JwtMiddleware, RequirePermission(checker, "payments", "read"), func(c *fiber.Ctx) error {
		return c.JSON(SuccessResponse[any]("ok", nil))
	})
	app.Post("/payments/approve", JwtMiddleware, RequirePermission(checker, "payments", "approve"), func(c *fiber.Ctx) error {
		return c.JSON(SuccessResponse[any]("ok", nil))
	})

	token := signToken(t, uuid.NewString())

	t.Run("granted", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/payments", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req, -1)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("denied with the missing permission named", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/payments/approve", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req, -1)
		assert.Equal(t, 403, resp.StatusCode)

		var body Response[any]
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "Not enough permissions. Required: payments:approve", body.Message)
	})

	t.Run("unauthenticated request never reaches the checker", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/payments", nil)
		resp, _ := app.Test(req, -1)
		assert.Equal(t, 401, resp.StatusCode)
	})
}
