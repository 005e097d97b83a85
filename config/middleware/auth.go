package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"Presensi-QR-Karyawan/models"
	"Presensi-QR-Karyawan/pkg/paseto"
)

// SessionKey is the fiber.Locals key holding *models.Claims.
const SessionKey = "session"

func AuthMiddleware(maker *paseto.PasetoMaker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authorization header is required"})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authorization header format must be Bearer <token>"})
		}

		claims, err := maker.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token", "details": err.Error()})
		}

		c.Locals(SessionKey, claims)

		return c.Next()
	}
}

// Session returns the claims stored by AuthMiddleware.
func Session(c *fiber.Ctx) (*models.Claims, bool) {
	claims, ok := c.Locals(SessionKey).(*models.Claims)
	return claims, ok
}
