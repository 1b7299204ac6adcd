package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gvclassroom/classroom-api/internal/auth"
	"github.com/gvclassroom/classroom-api/internal/utils"
)

// OptionalAuth decodes a bearer token when one is present and binds the
// account identity to the request. A missing or invalid token leaves the
// request anonymous; route handlers decide whether identity is required.
func OptionalAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return c.Next()
		}

		claims, err := auth.Parse(tokenString, secret)
		if err != nil {
			return c.Next()
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("user_role", claims.Tipo)

		return c.Next()
	}
}

// RequireAuth rejects requests that did not authenticate via OptionalAuth.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if v := c.Locals("user_id"); v != nil {
			if id, ok := v.(string); ok && strings.TrimSpace(id) != "" {
				return c.Next()
			}
		}
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}
}

func bearerToken(c *fiber.Ctx) string {
	authorization := strings.TrimSpace(c.Get("Authorization"))
	if authorization == "" {
		return ""
	}

	const bearer = "bearer "
	if !strings.HasPrefix(strings.ToLower(authorization), bearer) {
		return ""
	}

	return strings.TrimSpace(authorization[len(bearer):])
}
