package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bidworks/internal/api/dto"
	"github.com/spec-kit/bidworks/internal/auth"
	"github.com/spec-kit/bidworks/internal/service"
	apperrors "github.com/spec-kit/bidworks/pkg/util"
)

// AuthHandler exposes the authentication endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login. OAuth2-style form fields: username holds
// the email.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("username")
	password := c.FormValue("password")
	if email == "" || password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	_, pair, err := h.auth.Login(c.UserContext(), email, password)
	if err != nil {
		return authFailure(err)
	}

	return c.JSON(dto.NewTokenResponse(pair))
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, err := h.auth.Register(c.UserContext(), req.Email, req.Password, req.FullName)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.NewUserResponse(user))
}

// Refresh handles POST /auth/refresh. Every successful call rotates the pair.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	_, pair, err := h.auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return authFailure(err)
	}

	return c.JSON(dto.NewTokenResponse(pair))
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated(auth.ErrMissingToken)
	}
	return c.JSON(dto.NewUserResponse(user))
}

// authFailure collapses every authentication failure into the generic 401
// and lets anything unexpected flow to the internal-error path.
func authFailure(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrWrongTokenKind),
		errors.Is(err, auth.ErrUnknownUser),
		errors.Is(err, auth.ErrInactiveAccount):
		return apperrors.NewUnauthenticated(err)
	case errors.Is(err, auth.ErrInsufficientRole):
		return apperrors.NewForbidden("insufficient role")
	default:
		return err
	}
}
