package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"jewelbox/internal/domain"
	applog "jewelbox/internal/log"
	"jewelbox/internal/services"
)

// bearer extracts the token from "Authorization: Bearer <token>".
func bearer(c *fiber.Ctx) string {
	scheme, tok, found := strings.Cut(strings.TrimSpace(c.Get(fiber.HeaderAuthorization)), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(tok)
}

// RequireToken rejects requests without a valid bearer token and stores the
// caller's identity in locals for the handlers behind it.
func RequireToken(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearer(c)
		if tok == "" {
			applog.Security(c, "auth.token.missing", nil)
			return reject(c, fiber.StatusUnauthorized, "Access token required")
		}
		id, err := auth.Authenticate(tok)
		if err != nil {
			applog.Security(c, "auth.token.invalid", nil)
			return reject(c, fiber.StatusForbidden, "Invalid or expired token")
		}
		c.Locals(applog.UserKey, id)
		return c.Next()
	}
}

func identity(c *fiber.Ctx) domain.Identity {
	id, _ := c.Locals(applog.UserKey).(domain.Identity)
	return id
}
