package handler

import (
	"os"

	"procureflow-be/internal/pkg/logger"
	internalWS "procureflow-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// WsHandler upgrades authenticated clients onto the notification hub.
type WsHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewWsHandler(hub *internalWS.Hub, log logger.ILogger) *WsHandler {
	return &WsHandler{hub: hub, logger: log}
}

func (h *WsHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws/:user_id", h.ServeWs)
}

// ServeWs authenticates the handshake and attaches the connection to the
// hub. Browsers cannot set headers on WebSocket requests, so the token is
// accepted from the "token" query param as well as the Authorization
// header. A subject that does not match the path segment is rejected with
// a policy violation close frame.
func (h *WsHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("WsHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing subject"})
	}
	tokenUserId, err := uuid.Parse(sub)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID in token"})
	}

	pathUserId, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID in path"})
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		// Users may only subscribe to their own channel.
		if tokenUserId != pathUserId {
			h.logger.Warn("WsHandler", "Subject/path mismatch on WS handshake", map[string]interface{}{
				"subject": tokenUserId.String(),
				"path":    pathUserId.String(),
			})
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "cannot subscribe to another user's channel"))
			conn.Close()
			return
		}

		h.logger.Info("WsHandler", "Starting WebSocket session", map[string]interface{}{"user_id": tokenUserId})
		internalWS.ServeWs(h.hub, conn, tokenUserId)
		h.logger.Info("WsHandler", "WebSocket session ended", map[string]interface{}{"user_id": tokenUserId})
	})(c)
}
