package middleware

import (
	"strings"

	"flux-backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthJWT accepts only bearer tokens signed with secret that carry role.
func AuthJWT(secret []byte, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return utils.HandleError(c, fiber.StatusUnauthorized, "Missing or invalid Authorization header")
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := utils.ParseJWT(secret, tokenStr)
		if err != nil {
			return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}
		if claims.Role != role {
			return utils.HandleError(c, fiber.StatusForbidden, "Insufficient permissions")
		}

		c.Locals("email", claims.Email)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}
