package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"Presensi-QR-Karyawan/pkg/schedule"
)

type ScheduleHandler struct {
	calendar *schedule.Calendar
	now      func() time.Time
}

func NewScheduleHandler(calendar *schedule.Calendar) *ScheduleHandler {
	return &ScheduleHandler{calendar: calendar, now: time.Now}
}

// GetTodaySchedule godoc
// @Summary Jadwal Hari Ini
// @Description Apakah hari ini hari kerja, beserta jam shift
// @Tags Schedule
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Shift
// @Router /schedule/today [get]
func (h *ScheduleHandler) GetTodaySchedule(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	shift, err := h.calendar.Today(ctx, h.now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menghitung jadwal", "details": err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(shift)
}

// GetHolidays godoc
// @Summary Hari Libur Nasional
// @Description Daftar hari libur nasional untuk tahun tertentu
// @Tags Schedule
// @Produce json
// @Security BearerAuth
// @Param year query string false "Tahun, contoh 2026"
// @Success 200 {array} models.Holiday
// @Failure 400 {object} models.ErrorResponse
// @Router /schedule/holidays [get]
func (h *ScheduleHandler) GetHolidays(c *fiber.Ctx) error {
	year := c.Query("year")
	if year == "" {
		year = strconv.Itoa(h.now().Year())
	}
	if y, err := strconv.Atoi(year); err != nil || y < 1900 || y > 2200 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Parameter year tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	return c.Status(fiber.StatusOK).JSON(h.calendar.Holidays(ctx, year))
}
