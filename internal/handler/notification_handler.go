package handler

import (
	"conote-be/internal/access"
	"conote-be/internal/pkg/logger"
	"conote-be/internal/pkg/serverutils"
	"conote-be/internal/service"
	internalWS "conote-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type NotificationHandler struct {
	service        service.INotificationService
	hub            *internalWS.Hub
	authMiddleware fiber.Handler
	logger         logger.ILogger
}

func NewNotificationHandler(
	svc service.INotificationService,
	hub *internalWS.Hub,
	authMiddleware fiber.Handler,
	log logger.ILogger,
) *NotificationHandler {
	return &NotificationHandler{
		service:        svc,
		hub:            hub,
		authMiddleware: authMiddleware,
		logger:         log,
	}
}

func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	notif := router.Group("/notification/v1")
	notif.Use(h.authMiddleware)
	notif.Get("", h.GetNotifications)

	// WebSocket handshake carries its token in the query param, browsers
	// cannot set headers on ws connections.
	router.Get("/ws", h.ServeWs)
}

func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	p := c.Locals("principal").(access.Principal)

	notifications, err := h.service.GetAll(c.UserContext(), p)
	if err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("Success get notifications", notifications))
}

// ServeWs authenticates the handshake and hands the connection to the hub.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := serverutils.TokenFromRequest(c)
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	userID, err := serverutils.ParseUserID(tokenStr)
	if err != nil {
		h.logger.Warn("NotificationHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("NotificationHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
			internalWS.ServeWs(h.hub, conn, userID)
			h.logger.Info("NotificationHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
