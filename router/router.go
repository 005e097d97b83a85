package router

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"Presensi-QR-Karyawan/config/middleware"
	_ "Presensi-QR-Karyawan/docs"
	"Presensi-QR-Karyawan/handlers"
	"Presensi-QR-Karyawan/models"
	"Presensi-QR-Karyawan/pkg/attendanceapi"
	"Presensi-QR-Karyawan/pkg/paseto"
	"Presensi-QR-Karyawan/pkg/qrtoken"
	"Presensi-QR-Karyawan/pkg/schedule"
	"Presensi-QR-Karyawan/repository"
)

// Deps are the collaborators shared by all handlers. ScanLogs may be nil.
type Deps struct {
	API      *attendanceapi.Client
	Maker    *paseto.PasetoMaker
	Registry *qrtoken.Registry
	Calendar *schedule.Calendar
	ScanLogs repository.ScanLogRepository
}

func SetupRoutes(app *fiber.App, deps Deps) {
	log.Println("Memulai pendaftaran rute aplikasi...")

	// Inisialisasi Handlers
	authHandler := handlers.NewAuthHandler(deps.API, deps.Maker, deps.Registry)
	attendanceHandler := handlers.NewAttendanceHandler(deps.API, deps.Registry)
	securityHandler := handlers.NewSecurityHandler(deps.API, deps.ScanLogs)
	scheduleHandler := handlers.NewScheduleHandler(deps.Calendar)

	// Health check & Docs
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":      "Presensi QR Karyawan API",
			"status":       "running",
			"docs":         "/docs/index.html",
			"qr_displays":  deps.Registry.Len(),
			"scan_journal": deps.ScanLogs != nil,
		})
	})
	app.Get("/docs/*", swagger.HandlerDefault)

	// API v1 group
	api := app.Group("/api/v1")
	auth := middleware.AuthMiddleware(deps.Maker)

	// Authentication routes
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", auth, authHandler.Me)
	authGroup.Post("/logout", auth, authHandler.Logout)

	// Presensi karyawan
	attendanceGroup := api.Group("/attendance", auth)
	attendanceGroup.Get("/today", attendanceHandler.GetTodayStatus)
	attendanceGroup.Get("/history", attendanceHandler.GetMyHistory)

	qrGroup := attendanceGroup.Group("/qr")
	qrGroup.Get("/", attendanceHandler.GetQR)
	qrGroup.Get("/image.png", attendanceHandler.GetQRImage)
	qrGroup.Post("/open", attendanceHandler.OpenQR)
	qrGroup.Post("/refresh", attendanceHandler.RefreshQR)
	qrGroup.Post("/close", attendanceHandler.CloseQR)

	// Satpam (admin juga boleh untuk keperluan uji di lapangan)
	securityGroup := api.Group("/security", auth, middleware.RoleMiddleware(models.RoleSecurity, models.RoleAdmin))
	securityGroup.Post("/scan", securityHandler.ScanQRCode)
	securityGroup.Get("/scans", securityHandler.GetRecentScans)

	scheduleGroup := api.Group("/schedule", auth)
	scheduleGroup.Get("/today", scheduleHandler.GetTodaySchedule)
	scheduleGroup.Get("/holidays", scheduleHandler.GetHolidays)

	log.Println("Pendaftaran rute selesai.")
}
