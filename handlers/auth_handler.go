package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"Presensi-QR-Karyawan/models"
	"Presensi-QR-Karyawan/pkg/attendanceapi"
	"Presensi-QR-Karyawan/pkg/paseto"
	"Presensi-QR-Karyawan/pkg/qrtoken"
	util "Presensi-QR-Karyawan/pkg/utils"
)

type AuthHandler struct {
	api      *attendanceapi.Client
	maker    *paseto.PasetoMaker
	registry *qrtoken.Registry
}

func NewAuthHandler(api *attendanceapi.Client, maker *paseto.PasetoMaker, registry *qrtoken.Registry) *AuthHandler {
	return &AuthHandler{
		api:      api,
		maker:    maker,
		registry: registry,
	}
}

// Login godoc
// @Summary Login User
// @Description Meneruskan kredensial ke Attendance API dan mengembalikan token sesi PASETO
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body models.UserLoginPayload true "Kredensial untuk Login"
// @Success 200 {object} models.LoginSuccessResponse "Login berhasil"
// @Failure 400 {object} object{error=string,errors=array} "Payload tidak valid atau validation error"
// @Failure 401 {object} models.ErrorResponse "Kombinasi email dan password salah"
// @Failure 502 {object} models.ErrorResponse "Attendance API tidak dapat dihubungi"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var payload models.UserLoginPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	data, err := h.api.Login(ctx, payload)
	if err != nil {
		return upstreamError(c, err, "Login gagal")
	}

	token, _, err := h.maker.GenerateToken(data.User, data.Token)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat token"})
	}

	return c.Status(fiber.StatusOK).JSON(models.LoginSuccessResponse{
		Message: "Login berhasil",
		Token:   token,
		User:    data.User,
	})
}

// Me godoc
// @Summary Current User
// @Description Mengambil profil user yang sedang login dari Attendance API
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} models.UnauthorizedErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, err := sessionOf(c)
	if claims == nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	user, err := h.api.WithToken(claims.UpstreamToken).Me(ctx)
	if err != nil {
		return upstreamError(c, err, "Gagal mengambil data user")
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// Logout godoc
// @Summary Logout User
// @Description Menutup tampilan QR milik sesi ini. Client tetap harus menghapus tokennya.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.LogoutSuccessResponse
// @Failure 401 {object} models.UnauthorizedErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, err := sessionOf(c)
	if claims == nil {
		return err
	}

	h.registry.Remove(claims.SessionID)
	return c.Status(fiber.StatusOK).JSON(models.LogoutSuccessResponse{
		Message: "Logout berhasil. Silakan hapus token dari sisi client.",
	})
}
