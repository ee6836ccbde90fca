package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/elitebuilders-client/internal/dto"
	"github.com/noah-isme/elitebuilders-client/internal/service"
	"github.com/noah-isme/elitebuilders-client/internal/utils"
)

// NotificationHandler manages the notification inbox.
type NotificationHandler struct {
	service service.NotificationService
	logger  zerolog.Logger
}

// NewNotificationHandler constructs a handler instance.
func NewNotificationHandler(service service.NotificationService, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger.With().Str("component", "notification_handler").Logger(),
	}
}

// Register binds the notification routes.
func (h *NotificationHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/unread-count", h.unreadCount)
	router.Put("/mark-all-read", h.markAllRead)
	router.Put("/:id/read", h.markRead)
}

func (h *NotificationHandler) list(c *fiber.Ctx) error {
	unreadOnly, err := parseQueryBool(c, "unread_only", false)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid unread_only")
	}

	notifications, err := h.service.GetNotifications(c.UserContext(), unreadOnly)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return utils.SendJSON(c, fiber.StatusOK, notifications)
}

func (h *NotificationHandler) unreadCount(c *fiber.Ctx) error {
	count, err := h.service.GetUnreadCount(c.UserContext())
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return utils.SendJSON(c, fiber.StatusOK, dto.UnreadCountResponse{Count: count})
}

func (h *NotificationHandler) markRead(c *fiber.Ctx) error {
	notification, err := h.service.MarkAsRead(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return utils.SendJSON(c, fiber.StatusOK, notification)
}

func (h *NotificationHandler) markAllRead(c *fiber.Ctx) error {
	if err := h.service.MarkAllAsRead(c.UserContext()); err != nil {
		return handleError(c, h.logger, err)
	}
	return utils.SendNoContent(c)
}
