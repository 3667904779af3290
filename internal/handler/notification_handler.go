package handler

import (
	"problem-solver-be/internal/pkg/logger"
	"problem-solver-be/internal/pkg/serverutils"
	internalWS "problem-solver-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/websocket/v2"
)

// SessionLookup reports whether a session with the given id is live.
type SessionLookup interface {
	Exists(id string) bool
}

type NotificationHandler struct {
	hub      *internalWS.Hub
	sessions []SessionLookup
	logger   logger.ILogger
}

func NewNotificationHandler(hub *internalWS.Hub, log logger.ILogger, sessions ...SessionLookup) *NotificationHandler {
	return &NotificationHandler{
		hub:      hub,
		sessions: sessions,
		logger:   log,
	}
}

func (h *NotificationHandler) sessionExists(id string) bool {
	for _, s := range h.sessions {
		if s.Exists(id) {
			return true
		}
	}
	return false
}

// ServeWs streams the notices of one solver or chat session.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	sessionID := utils.CopyString(c.Params("sessionId"))
	if !h.sessionExists(sessionID) {
		return c.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, "session not found"))
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("NotificationHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionID})
		internalWS.ServeWs(h.hub, conn, sessionID)
		h.logger.Info("NotificationHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionID})
	})(c)
}

func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/:sessionId", h.ServeWs)
}
