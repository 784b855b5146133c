package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/offloadr/connect-api/internal/api/dto"
	"github.com/offloadr/connect-api/internal/auth"
	"github.com/offloadr/connect-api/internal/domain"
	"github.com/offloadr/connect-api/internal/service"
)

// NotificationsHandler exposes the per-user notification feed.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notifications *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

// List handles GET /api/v1/notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	items, unread, err := h.notifications.ListForUser(c.Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"notifications": dto.NewNotificationResponses(items),
			"unread_count":  unread,
		},
	})
}

// MarkRead handles PUT /api/v1/notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	if err := h.notifications.MarkRead(c.Context(), user, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id"), "read": true}})
}

// MarkAllRead handles PUT /api/v1/notifications/read-all.
func (h *NotificationsHandler) MarkAllRead(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	if err := h.notifications.MarkAllRead(c.Context(), user); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "all_read"}})
}

// Send handles POST /api/v1/notifications (admin only).
func (h *NotificationsHandler) Send(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.NotificationSendRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.UserID == "" || req.Title == "" || req.Message == "" {
		return fiber.NewError(http.StatusBadRequest, "user_id, title, message required")
	}

	notification := &domain.Notification{
		UserID:  req.UserID,
		Type:    domain.NotificationType(req.Type),
		Title:   req.Title,
		Message: req.Message,
	}
	if req.WorkspaceID != "" {
		notification.WorkspaceID = &req.WorkspaceID
	}
	if req.TaskID != "" {
		notification.TaskID = &req.TaskID
	}

	if err := h.notifications.Send(c.Context(), actor, notification); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewNotificationResponse(notification)})
}
