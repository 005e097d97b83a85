package handlers

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"Presensi-QR-Karyawan/models"
	"Presensi-QR-Karyawan/pkg/attendanceapi"
	util "Presensi-QR-Karyawan/pkg/utils"
	"Presensi-QR-Karyawan/repository"
)

// ScanPause is how long the same QR value from the same guard is refused
// after a scan attempt.
const ScanPause = 2500 * time.Millisecond

type SecurityHandler struct {
	api    *attendanceapi.Client
	repo   repository.ScanLogRepository
	recent *recentScans
}

// NewSecurityHandler builds the guard endpoints. repo may be nil, which
// disables the scan journal.
func NewSecurityHandler(api *attendanceapi.Client, repo repository.ScanLogRepository) *SecurityHandler {
	return &SecurityHandler{
		api:    api,
		repo:   repo,
		recent: newRecentScans(ScanPause, time.Now),
	}
}

// ScanQRCode godoc
// @Summary Scan QR Presensi
// @Description Satpam memindai QR karyawan. Attendance API menentukan check-in atau check-out.
// @Tags Security
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param scan body models.QRCodeScanPayload true "Nilai QR yang dipindai"
// @Success 200 {object} models.ScanResponse
// @Failure 400 {object} object{error=string,errors=array}
// @Failure 403 {object} models.ForbiddenErrorResponse
// @Failure 429 {object} models.ErrorResponse "QR yang sama baru saja dipindai"
// @Failure 502 {object} models.ErrorResponse
// @Router /security/scan [post]
func (h *SecurityHandler) ScanQRCode(c *fiber.Ctx) error {
	claims, err := sessionOf(c)
	if claims == nil {
		return err
	}

	var payload models.QRCodeScanPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload tidak valid: " + err.Error()})
	}
	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	if !h.recent.allow(claims.UserID, payload.QR) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "QR Code ini baru saja dipindai. Mohon tunggu sebentar."})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	result, err := h.api.WithToken(claims.UpstreamToken).SubmitScan(ctx, payload.QR)
	if err != nil {
		return upstreamError(c, err, "Gagal memproses QR Code")
	}

	mode := "Check Out"
	if result.Mode == models.ModeCheckIn {
		mode = "Check In"
	}
	name := result.Attendance.User.Name
	if name == "" {
		name = "Karyawan"
	}

	if h.repo != nil {
		entry := &models.ScanLog{
			GuardID:      claims.UserID,
			GuardName:    claims.Name,
			Mode:         result.Mode,
			EmployeeID:   result.Attendance.User.ID,
			EmployeeName: name,
			RequestID:    c.GetRespHeader(fiber.HeaderXRequestID),
			ScannedAt:    time.Now(),
		}
		if _, err := h.repo.Create(ctx, entry); err != nil {
			// Presensi sudah tercatat di Attendance API; jurnal hanya pelengkap.
			log.Printf("Warning: gagal menyimpan log scan: %v", err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(models.ScanResponse{
		Message:      mode + " Berhasil",
		Mode:         result.Mode,
		EmployeeName: name,
		Description:  name + " berhasil " + mode,
	})
}

// GetRecentScans godoc
// @Summary Riwayat Scan Satpam
// @Description Log scan terbaru milik satpam yang sedang login
// @Tags Security
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Jumlah maksimal (1-100)" default(20)
// @Success 200 {object} models.ScanLogListResponse
// @Failure 403 {object} models.ForbiddenErrorResponse
// @Failure 503 {object} models.ErrorResponse "Jurnal scan tidak aktif"
// @Router /security/scans [get]
func (h *SecurityHandler) GetRecentScans(c *fiber.Ctx) error {
	claims, err := sessionOf(c)
	if claims == nil {
		return err
	}
	if h.repo == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Jurnal scan tidak aktif (MONGOSTRING belum di setting)"})
	}

	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Parameter limit harus antara 1 dan 100"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	logs, err := h.repo.FindRecentByGuard(ctx, claims.UserID, int64(limit))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil log scan", "details": err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(models.ScanLogListResponse{Data: logs, Total: len(logs)})
}

// recentScans remembers the last attempt per guard and QR value.
type recentScans struct {
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	seen map[string]time.Time
}

func newRecentScans(window time.Duration, now func() time.Time) *recentScans {
	return &recentScans{window: window, now: now, seen: make(map[string]time.Time)}
}

// allow records an attempt and reports whether it falls outside the pause
// window of the previous identical attempt.
func (r *recentScans) allow(guardID, qr string) bool {
	now := r.now()
	key := guardID + "\x00" + qr

	r.mu.Lock()
	defer r.mu.Unlock()
	for k, at := range r.seen {
		if now.Sub(at) >= r.window {
			delete(r.seen, k)
		}
	}
	if _, dup := r.seen[key]; dup {
		return false
	}
	r.seen[key] = now
	return true
}
