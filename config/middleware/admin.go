package middleware

import (
	"github.com/gofiber/fiber/v2"

	"Attendance-Roster-Backend/pkg/paseto"
)

// AdminMiddleware runs after AuthMiddleware and rejects non-admin tokens.
func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("user").(*paseto.Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
		}

		if claims.Role != "admin" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin privileges required"})
		}

		return c.Next()
	}
}
