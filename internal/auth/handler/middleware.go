package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/OzanKEreal/EndlleesTube/internal/auth/service"
	apperrors "github.com/OzanKEreal/EndlleesTube/internal/errors"
)

const localsClaimsKey = "authClaims"

// RequireAuth rejects requests without a valid bearer access token and
// stashes the verified claims in the request locals.
func RequireAuth(tokens service.TokenGenerator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := bearerClaims(c, tokens)
		if !ok {
			return respondError(c, fiber.StatusUnauthorized, apperrors.ErrInvalidAccessToken.Error())
		}
		c.Locals(localsClaimsKey, claims)
		return c.Next()
	}
}

// OptionalAuth stashes claims when a valid bearer token is present and lets
// the request through either way. View counting uses it to attribute views
// to logged-in users without requiring login.
func OptionalAuth(tokens service.TokenGenerator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claims, ok := bearerClaims(c, tokens); ok {
			c.Locals(localsClaimsKey, claims)
		}
		return c.Next()
	}
}

// ClaimsFromCtx returns the access claims stashed by RequireAuth or
// OptionalAuth, or nil when the request is anonymous.
func ClaimsFromCtx(c *fiber.Ctx) *service.AccessClaims {
	claims, _ := c.Locals(localsClaimsKey).(*service.AccessClaims)
	return claims
}

func bearerClaims(c *fiber.Ctx, tokens service.TokenGenerator) (*service.AccessClaims, bool) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, false
	}

	claims, err := tokens.VerifyAccessToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return nil, false
	}

	return claims, true
}
