package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/OzanKEreal/EndlleesTube/config"
	"github.com/OzanKEreal/EndlleesTube/internal/auth/dto"
	"github.com/OzanKEreal/EndlleesTube/internal/auth/service"
	apperrors "github.com/OzanKEreal/EndlleesTube/internal/errors"
	"github.com/OzanKEreal/EndlleesTube/internal/validation"
	"github.com/OzanKEreal/EndlleesTube/pkg/constant"
)

type AuthHandler struct {
	userService *service.UserService
	tokens      service.TokenGenerator
	cfg         *config.Config
}

func NewAuthHandler(userService *service.UserService, tokens service.TokenGenerator, cfg *config.Config) *AuthHandler {
	return &AuthHandler{userService: userService, tokens: tokens, cfg: cfg}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := validation.Struct(&input); err != nil {
		return respondValidationError(c, err)
	}

	result, err := h.userService.Register(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserExists) {
			return respondError(c, fiber.StatusConflict, err.Error())
		}
		return respondError(c, fiber.StatusInternalServerError, "internal server error")
	}

	h.setRefreshCookie(c, result.Tokens.RefreshToken)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"user":        result.User,
		"accessToken": result.Tokens.AccessToken,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := validation.Struct(&input); err != nil {
		return respondValidationError(c, err)
	}

	result, err := h.userService.Login(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			// Deliberately the same message whether the identifier or the
			// password was wrong.
			return respondError(c, fiber.StatusUnauthorized, err.Error())
		}
		return respondError(c, fiber.StatusInternalServerError, "internal server error")
	}

	h.setRefreshCookie(c, result.Tokens.RefreshToken)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":     true,
		"user":        result.User,
		"accessToken": result.Tokens.AccessToken,
	})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	rawToken := c.Cookies(constant.RefreshTokenCookie)
	if rawToken == "" {
		return respondError(c, fiber.StatusUnauthorized, "no refresh token provided")
	}

	result, err := h.userService.Refresh(c.UserContext(), rawToken)
	if err != nil {
		h.clearRefreshCookie(c)
		return respondError(c, fiber.StatusUnauthorized, apperrors.ErrInvalidRefreshToken.Error())
	}

	h.setRefreshCookie(c, result.Tokens.RefreshToken)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":     true,
		"accessToken": result.Tokens.AccessToken,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.userService.Logout(c.UserContext(), c.Cookies(constant.RefreshTokenCookie))
	h.clearRefreshCookie(c)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "logged out successfully",
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims := ClaimsFromCtx(c)
	if claims == nil {
		return respondError(c, fiber.StatusUnauthorized, apperrors.ErrInvalidAccessToken.Error())
	}

	user, err := h.userService.Me(c.UserContext(), claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return respondError(c, fiber.StatusNotFound, err.Error())
		}
		return respondError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     constant.RefreshTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokens.GetRefreshTokenExpiry() / time.Second),
		HTTPOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     constant.RefreshTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func respondError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}

func respondValidationError(c *fiber.Ctx, err error) error {
	var ve *validation.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "validation failed",
			"details": ve.Violations,
		})
	}
	return respondError(c, fiber.StatusBadRequest, "invalid input")
}
