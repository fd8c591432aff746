package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/homestay/rental-service/internal/api/dto"
	"github.com/homestay/rental-service/internal/auth"
	"github.com/homestay/rental-service/internal/service"
	apperrors "github.com/homestay/rental-service/pkg/util"
)

// AuthHandler exposes the account endpoints consumed by the mobile client.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	res, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.NewRegisterResponse(res.User, res.Token, res.ExpiresAt))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	res, err := h.auth.Login(c.UserContext(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.NewProfileResponse(res.User, res.Token, res.ExpiresAt))
}

// Profile handles GET /api/auth/profile.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	token, _ := auth.TokenFromContext(c)
	res, err := h.auth.Profile(c.UserContext(), token)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProfileResponse(res.User, res.Token, res.ExpiresAt))
}

// UpdateProfile handles PUT /api/auth/profile.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	token, _ := auth.TokenFromContext(c)

	fields := map[string]any{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&fields); err != nil {
			// an invalid token outranks a bad body
			if _, authErr := h.auth.Authorize(token); authErr != nil {
				return authErr
			}
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	res, err := h.auth.UpdateProfile(c.UserContext(), token, fields)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProfileResponse(res.User, res.Token, res.ExpiresAt))
}
