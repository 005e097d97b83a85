package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RoleMiddleware lets the request through only for the given roles.
// Must run after AuthMiddleware.
func RoleMiddleware(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := Session(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Tidak terautentikasi atau data sesi rusak"})
		}

		for _, role := range roles {
			if claims.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Akses ditolak. Hak akses " + strings.ToLower(strings.Join(roles, "/")) + " diperlukan",
		})
	}
}
