package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bidworks/internal/api/dto"
	"github.com/spec-kit/bidworks/internal/auth"
	"github.com/spec-kit/bidworks/internal/domain"
	"github.com/spec-kit/bidworks/internal/service"
	apperrors "github.com/spec-kit/bidworks/pkg/util"
)

// UsersHandler exposes account management endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List handles GET /users (admin only).
func (h *UsersHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)

	users, err := h.users.List(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserListResponse(users))
}

// Get handles GET /users/:id (admin only).
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// UpdateMe handles PATCH /users/me. Non-admin role changes are dropped, not
// rejected, matching the self-service contract.
func (h *UsersHandler) UpdateMe(c *fiber.Ctx) error {
	actor, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated(auth.ErrMissingToken)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	update := service.UserUpdate{
		FullName: req.FullName,
		Password: req.Password,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		update.Role = &role
	}

	user, err := h.users.Update(c.UserContext(), actor, actor.ID, update)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Delete handles DELETE /users/:id (admin only).
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
