package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/offloadr/connect-api/internal/api/dto"
	"github.com/offloadr/connect-api/internal/auth"
	"github.com/offloadr/connect-api/internal/service"
)

// WorkspacesHandler exposes the per-client workspace surface.
type WorkspacesHandler struct {
	workspaces *service.WorkspaceService
}

// NewWorkspacesHandler constructs handler.
func NewWorkspacesHandler(workspaces *service.WorkspaceService) *WorkspacesHandler {
	return &WorkspacesHandler{workspaces: workspaces}
}

// List handles GET /api/v1/workspaces.
func (h *WorkspacesHandler) List(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	views, err := h.workspaces.List(c.Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWorkspaceResponses(views)})
}

// Get handles GET /api/v1/workspaces/:id.
func (h *WorkspacesHandler) Get(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	view, err := h.workspaces.Get(c.Context(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWorkspaceResponse(*view)})
}

// Create handles POST /api/v1/workspaces (admin only).
func (h *WorkspacesHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.WorkspaceCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name required")
	}

	ws, err := h.workspaces.Create(c.Context(), actor, service.WorkspaceCreateInput{
		Name:             req.Name,
		Description:      req.Description,
		Progress:         req.Progress,
		ClientID:         req.ClientID,
		AssignedStaffIDs: req.AssignedStaffIDs,
	})
	if err != nil {
		return err
	}

	view, err := h.workspaces.Get(c.Context(), actor, ws.ID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewWorkspaceResponse(*view)})
}

// SetProgress handles PUT /api/v1/workspaces/:id/progress.
func (h *WorkspacesHandler) SetProgress(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.ProgressUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	view, err := h.workspaces.SetProgress(c.Context(), actor, c.Params("id"), req.Progress)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWorkspaceResponse(*view)})
}

// Delete handles DELETE /api/v1/workspaces/:id (admin only).
func (h *WorkspacesHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	if err := h.workspaces.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
