package handlers

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/gofiber/fiber/v2"
	qrcode "github.com/skip2/go-qrcode"

	"Presensi-QR-Karyawan/models"
	"Presensi-QR-Karyawan/pkg/attendanceapi"
	"Presensi-QR-Karyawan/pkg/qrtoken"
	util "Presensi-QR-Karyawan/pkg/utils"
)

const qrImageSize = 256

type AttendanceHandler struct {
	api      *attendanceapi.Client
	registry *qrtoken.Registry
}

func NewAttendanceHandler(api *attendanceapi.Client, registry *qrtoken.Registry) *AttendanceHandler {
	return &AttendanceHandler{api: api, registry: registry}
}

// GetTodayStatus godoc
// @Summary Status Presensi Hari Ini
// @Description Menentukan apakah QR berikutnya untuk check-in atau check-out
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AttendanceStatusResponse
// @Failure 401 {object} models.UnauthorizedErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /attendance/today [get]
func (h *AttendanceHandler) GetTodayStatus(c *fiber.Ctx) error {
	claims, err := sessionOf(c)
	if claims == nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	record, err := h.api.WithToken(claims.UpstreamToken).TodayStatus(ctx)
	if err != nil {
		return upstreamError(c, err, "Gagal mengambil status presensi")
	}

	resp := models.AttendanceStatusResponse{CheckedIn: record.Open(), Mode: models.ModeCheckIn}
	if resp.CheckedIn {
		resp.Mode = models.ModeCheckOut
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetMyHistory godoc
// @Summary Riwayat Presensi
// @Description Riwayat presensi milik user yang sedang login
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param page query int false "Halaman" default(1)
// @Param pageSize query int false "Jumlah per halaman (maks 100)" default(10)
// @Success 200 {object} models.AttendanceHistory
// @Failure 400 {object} object{errors=array}
// @Failure 401 {object} models.UnauthorizedErrorResponse
// @Router /attendance/history [get]
func (h *AttendanceHandler) GetMyHistory(c *fiber.Ctx) error {
	claims, err := sessionOf(c)
	if claims == nil {
		return err
	}

	query := models.HistoryQuery{Page: 1, PageSize: 10}
	if err := c.QueryParser(&query); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Parameter query tidak valid", "details": err.Error()})
	}
	if errors := util.ValidateStruct(query); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	history, err := h.api.WithToken(claims.UpstreamToken).History(ctx, query.Page, query.PageSize)
	if err != nil {
		return upstreamError(c, err, "Gagal mengambil riwayat kehadiran")
	}
	return c.Status(fiber.StatusOK).JSON(history)
}

// OpenQR godoc
// @Summary Buka Tampilan QR
// @Description Membuka tampilan QR presensi untuk sesi ini dan mulai menerbitkan token
// @Tags Attendance QR
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.QRSnapshotResponse
// @Failure 401 {object} models.SessionEndedResponse
// @Router /attendance/qr/open [post]
func (h *AttendanceHandler) OpenQR(c *fiber.Ctx) error {
	claims, err := sessionOf(c)
	if claims == nil {
		return err
	}

	d := h.registry.Acquire(claims.SessionID, h.api.WithToken(claims.UpstreamToken), claims.ExpiresAt)
	d.Open()
	return h.respondSnapshot(c, claims.SessionID, d)
}

// RefreshQR godoc
// @Summary Perbarui QR
// @Description Meminta token baru sekarang. Diabaikan saat sedang memuat atau menunggu batas permintaan.
// @Tags Attendance QR
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.QRSnapshotResponse
// @Failure 401 {object} models.SessionEndedResponse
// @Failure 404 {object} models.ErrorResponse "Tampilan QR belum dibuka"
// @Router /attendance/qr/refresh [post]
func (h *AttendanceHandler) RefreshQR(c *fiber.Ctx) error {
	claims, err := sessionOf(c)
	if claims == nil {
		return err
	}

	d, ok := h.registry.Get(claims.SessionID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tampilan QR belum dibuka"})
	}
	d.RefreshNow()
	return h.respondSnapshot(c, claims.SessionID, d)
}

// GetQR godoc
// @Summary Status Tampilan QR
// @Description Mengembalikan state controller, notifikasi yang belum ditampilkan, dan gambar QR saat siap
// @Tags Attendance QR
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.QRSnapshotResponse
// @Failure 401 {object} models.SessionEndedResponse
// @Failure 404 {object} models.ErrorResponse "Tampilan QR belum dibuka"
// @Router /attendance/qr [get]
func (h *AttendanceHandler) GetQR(c *fiber.Ctx) error {
	claims, err := sessionOf(c)
	if claims == nil {
		return err
	}

	d, ok := h.registry.Get(claims.SessionID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tampilan QR belum dibuka"})
	}
	return h.respondSnapshot(c, claims.SessionID, d)
}

// GetQRImage godoc
// @Summary Gambar QR
// @Description PNG dari token yang sedang aktif
// @Tags Attendance QR
// @Produce png
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 404 {object} models.ErrorResponse "Tampilan QR belum dibuka"
// @Failure 409 {object} models.ErrorResponse "Belum ada token yang siap"
// @Router /attendance/qr/image.png [get]
func (h *AttendanceHandler) GetQRImage(c *fiber.Ctx) error {
	claims, err := sessionOf(c)
	if claims == nil {
		return err
	}

	d, ok := h.registry.Get(claims.SessionID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tampilan QR belum dibuka"})
	}
	state := d.State()
	if state.Phase != qrtoken.PhaseReady || state.Token == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "QR Code belum siap", "details": state.String()})
	}

	png, err := qrcode.Encode(state.Token.Value, qrcode.Medium, qrImageSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat gambar QR Code."})
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Type("png")
	return c.Status(fiber.StatusOK).Send(png)
}

// CloseQR godoc
// @Summary Tutup Tampilan QR
// @Description Menghentikan countdown dan melupakan token milik sesi ini
// @Tags Attendance QR
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Router /attendance/qr/close [post]
func (h *AttendanceHandler) CloseQR(c *fiber.Ctx) error {
	claims, err := sessionOf(c)
	if claims == nil {
		return err
	}

	h.registry.Remove(claims.SessionID)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Tampilan QR ditutup"})
}

func (h *AttendanceHandler) respondSnapshot(c *fiber.Ctx, key string, d *qrtoken.Display) error {
	snap := d.Snapshot()
	if snap.SessionEnded {
		h.registry.Remove(key)
		return c.Status(fiber.StatusUnauthorized).JSON(models.SessionEndedResponse{
			Error:    qrtoken.MsgSessionExpired,
			Redirect: "/login",
		})
	}

	resp := models.QRSnapshotResponse{Snapshot: snap}
	if snap.State.Phase == qrtoken.PhaseReady && snap.State.Token != nil {
		png, err := qrcode.Encode(snap.State.Token.Value, qrcode.Medium, qrImageSize)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat gambar QR Code."})
		}
		resp.QRCodeImage = "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(fiber.StatusOK).JSON(resp)
}
