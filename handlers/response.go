package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"Presensi-QR-Karyawan/config/middleware"
	"Presensi-QR-Karyawan/models"
	"Presensi-QR-Karyawan/pkg/attendanceapi"
)

func sessionOf(c *fiber.Ctx) (*models.Claims, error) {
	claims, ok := middleware.Session(c)
	if !ok {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Tidak terautentikasi atau data sesi rusak"})
	}
	return claims, nil
}

// upstreamError meneruskan status dan pesan dari Attendance API. Kegagalan
// jaringan dijawab 502.
func upstreamError(c *fiber.Ctx, err error, fallback string) error {
	var apiErr *attendanceapi.APIError
	if errors.As(err, &apiErr) {
		if apiErr.RetryAfter != "" {
			c.Set(fiber.HeaderRetryAfter, apiErr.RetryAfter)
		}
		msg := apiErr.Message
		if msg == "" {
			msg = fallback
		}
		return c.Status(apiErr.StatusCode).JSON(fiber.Map{"error": msg})
	}

	log.Printf("Error: attendance API %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": fallback, "details": err.Error()})
}
