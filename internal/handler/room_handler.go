package handler

import (
	"ai-courselab-be/internal/pkg/logger"
	"ai-courselab-be/internal/pkg/serverutils"
	internalWS "ai-courselab-be/internal/websocket"
	"ai-courselab-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// RoomHandler upgrades HTTP requests into room websocket sessions. The room
// kind comes from the route, the room id from the path param.
type RoomHandler struct {
	hub     *internalWS.Hub
	handler internalWS.MessageHandler
	logger  logger.ILogger
}

func NewRoomHandler(hub *internalWS.Hub, handler internalWS.MessageHandler, log logger.ILogger) *RoomHandler {
	return &RoomHandler{
		hub:     hub,
		handler: handler,
		logger:  log,
	}
}

func (h *RoomHandler) serveRoom(kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr, err := serverutils.ParseWsToken(c)
		if err != nil {
			h.logger.Warn("RoomHandler", "Rejected WS handshake", map[string]interface{}{"error": err.Error()})
			return err
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid user id in token")
		}

		roomID := c.Params("id")
		if _, err := uuid.Parse(roomID); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Room id must be a valid uuid")
		}

		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("RoomHandler", "Room session started", map[string]interface{}{
				"room": roomID, "kind": kind, "user_id": userID,
			})
			internalWS.ServeWs(h.hub, conn, roomID, kind, userID, h.handler)
			h.logger.Info("RoomHandler", "Room session ended", map[string]interface{}{
				"room": roomID, "kind": kind, "user_id": userID,
			})
		})(c)
	}
}

func (h *RoomHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/outline/:id", h.serveRoom(store.RoomOutline))
	router.Get("/ws/document/:id", h.serveRoom(store.RoomDocument))
}
