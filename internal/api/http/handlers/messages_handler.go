package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/offloadr/connect-api/internal/api/dto"
	"github.com/offloadr/connect-api/internal/auth"
	"github.com/offloadr/connect-api/internal/domain"
	"github.com/offloadr/connect-api/internal/service"
)

// MessagesHandler covers workspace channels and the global staff channel.
type MessagesHandler struct {
	messages *service.MessageService
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(messages *service.MessageService) *MessagesHandler {
	return &MessagesHandler{messages: messages}
}

// ListWorkspace handles GET /api/v1/workspaces/:id/messages.
func (h *MessagesHandler) ListWorkspace(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	msgs, err := h.messages.ListWorkspace(c.Context(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMessageResponses(msgs)})
}

// SendWorkspace handles POST /api/v1/workspaces/:id/messages.
func (h *MessagesHandler) SendWorkspace(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.MessageSendRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Text == "" {
		return fiber.NewError(http.StatusBadRequest, "text required")
	}

	msgType := domain.MessageTypeClient
	if req.Type != "" {
		msgType = domain.MessageType(req.Type)
	}

	msg, err := h.messages.SendWorkspace(c.Context(), user, c.Params("id"), req.Text, msgType)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewMessageResponse(msg)})
}

// ListGlobal handles GET /api/v1/staff-chat (team members only).
func (h *MessagesHandler) ListGlobal(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	msgs, err := h.messages.ListGlobal(c.Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMessageResponses(msgs)})
}

// SendGlobal handles POST /api/v1/staff-chat (team members only).
func (h *MessagesHandler) SendGlobal(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.GlobalMessageSendRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Text == "" {
		return fiber.NewError(http.StatusBadRequest, "text required")
	}

	var recipientID *string
	if req.RecipientID != "" {
		recipientID = &req.RecipientID
	}

	msg, err := h.messages.SendGlobal(c.Context(), user, req.Text, recipientID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewMessageResponse(msg)})
}
