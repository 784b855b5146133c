package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/offloadr/connect-api/internal/api/dto"
	"github.com/offloadr/connect-api/internal/auth"
	"github.com/offloadr/connect-api/internal/service"
)

// TasksHandler exposes the per-workspace checklist.
type TasksHandler struct {
	tasks *service.TaskService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(tasks *service.TaskService) *TasksHandler {
	return &TasksHandler{tasks: tasks}
}

// List handles GET /api/v1/workspaces/:id/tasks.
func (h *TasksHandler) List(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	tasks, err := h.tasks.List(c.Context(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTaskResponses(tasks)})
}

// Create handles POST /api/v1/workspaces/:id/tasks (team members only).
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.TaskCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Label == "" {
		return fiber.NewError(http.StatusBadRequest, "label required")
	}

	task, err := h.tasks.Create(c.Context(), actor, c.Params("id"), req.Label)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTaskResponse(task)})
}

// Toggle handles PUT /api/v1/workspaces/:id/tasks/:taskId/toggle.
func (h *TasksHandler) Toggle(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	task, err := h.tasks.Toggle(c.Context(), actor, c.Params("id"), c.Params("taskId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTaskResponse(task)})
}
