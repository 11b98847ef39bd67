package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"Attendance-Roster-Backend/pkg/paseto"
)

// AuthMiddleware verifies the Bearer token and stores the decoded claims in
// c.Locals("user") for the handlers downstream.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if !ok || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or malformed authorization header, expected 'Bearer <token>'"})
		}

		claims, err := paseto.ValidateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token", "details": err.Error()})
		}

		c.Locals("user", claims)
		return c.Next()
	}
}
