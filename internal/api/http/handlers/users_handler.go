package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/offloadr/connect-api/internal/api/dto"
	"github.com/offloadr/connect-api/internal/auth"
	"github.com/offloadr/connect-api/internal/domain"
	"github.com/offloadr/connect-api/internal/service"
)

// UsersHandler covers profile self-service, the staff directory, and the
// admin user-management surface.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Me handles GET /api/v1/profile.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// UpdateProfile handles PATCH /api/v1/profile.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	input := service.ProfileUpdateInput{
		Name:        req.Name,
		Phone:       req.Phone,
		TimeZone:    req.TimeZone,
		CompanyName: req.CompanyName,
	}
	if req.ClientType != nil {
		ct := domain.ClientType(*req.ClientType)
		input.ClientType = &ct
	}
	if req.PreferredContactMethod != nil {
		cm := domain.ContactMethod(*req.PreferredContactMethod)
		input.PreferredContactMethod = &cm
	}
	if req.CommunicationFrequency != nil {
		cf := domain.ContactFrequency(*req.CommunicationFrequency)
		input.CommunicationFrequency = &cf
	}
	if req.StaffRole != nil {
		sr := domain.StaffRole(*req.StaffRole)
		input.StaffRole = &sr
	}

	updated, err := h.users.UpdateProfile(c.Context(), user, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(updated)})
}

// List handles GET /api/v1/users (admin only).
func (h *UsersHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	users, err := h.users.ListUsers(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponses(users)})
}

// ListStaff handles GET /api/v1/staff (team members only).
func (h *UsersHandler) ListStaff(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	staff, err := h.users.ListStaff(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponses(staff)})
}

// StaffRoles handles GET /api/v1/staff/roles.
func (h *UsersHandler) StaffRoles(c *fiber.Ctx) error {
	roles := make([]fiber.Map, 0, len(domain.StaffRoles))
	for _, role := range domain.StaffRoles {
		roles = append(roles, fiber.Map{
			"value": string(role),
			"label": role.Label(),
		})
	}
	return c.JSON(fiber.Map{"data": roles})
}

// ChangeRole handles PUT /api/v1/users/:id/role (admin only).
func (h *UsersHandler) ChangeRole(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.RoleChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	targetID := c.Params("id")
	if err := h.users.ChangeRole(c.Context(), actor, targetID, domain.Role(req.Role)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": targetID, "role": req.Role}})
}

// Delete handles DELETE /api/v1/users/:id (admin only).
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	if err := h.users.DeleteUser(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
