package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"Presensi-QR-Karyawan/config"
	"Presensi-QR-Karyawan/pkg/attendanceapi"
	"Presensi-QR-Karyawan/pkg/paseto"
	"Presensi-QR-Karyawan/pkg/qrtoken"
	"Presensi-QR-Karyawan/pkg/schedule"
	util "Presensi-QR-Karyawan/pkg/utils"
	"Presensi-QR-Karyawan/repository"
	"Presensi-QR-Karyawan/router"
	_ "time/tzdata"
)

// @title Presensi QR Karyawan API
// @version 1.0
// @description Backend-for-frontend presensi QR: token QR berputar untuk karyawan, scan untuk satpam, jadwal shift.
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:3000
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
//
// @tag.name Auth
// @tag.description Login via Attendance API dan token sesi
//
// @tag.name Attendance
// @tag.description Status dan riwayat presensi karyawan
//
// @tag.name Attendance QR
// @tag.description Tampilan QR presensi yang berputar
//
// @tag.name Security
// @tag.description Scan QR oleh satpam
//
// @tag.name Schedule
// @tag.description Jadwal shift dan hari libur
func main() {
	cfg := config.LoadConfig()

	deps := router.Deps{
		API: attendanceapi.NewClient(cfg.AttendanceAPIURL, cfg.APITimeout),
		Registry: qrtoken.NewRegistry(qrtoken.Options{
			RequestTimeout: cfg.APITimeout,
			IdleTimeout:    cfg.QRIdleTimeout,
		}),
	}
	// Tab yang ditinggal tanpa logout tetap dibersihkan.
	deps.Registry.StartSweeper(30 * time.Second)

	maker, err := paseto.NewPasetoMaker(cfg.PASETO_SECRET, cfg.SessionTTL)
	if err != nil {
		log.Fatalf("Gagal menginisialisasi token generator: %v", err)
	}
	deps.Maker = maker

	var holidays schedule.HolidaySource
	if cfg.HolidayAPIURL != "" {
		holidays = &util.HolidayFetcher{
			BaseURL:    cfg.HolidayAPIURL,
			HTTPClient: &http.Client{Timeout: cfg.APITimeout},
		}
	}
	calendar, err := schedule.NewCalendar(cfg.ShiftRRule, cfg.ShiftStart, cfg.ShiftEnd, cfg.Location(), holidays)
	if err != nil {
		log.Fatalf("SHIFT_RRULE tidak valid: %v", err)
	}
	deps.Calendar = calendar

	if cfg.MONGOSTRING != "" {
		client, err := config.MongoConnect(cfg.MONGOSTRING)
		if err != nil {
			log.Printf("Warning: jurnal scan dinonaktifkan: %v", err)
		} else {
			defer config.DisconnectDB(client)
			deps.ScanLogs = repository.NewScanLogRepository(config.GetCollection(client, config.ScanLogCollection))
		}
	} else {
		log.Println("Warning: MONGOSTRING belum di setting, jurnal scan dinonaktifkan")
	}

	app := fiber.New(fiber.Config{AppName: "Presensi QR Karyawan"})

	config.SetupCORS(app, cfg.AllowedOrigins)
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	router.SetupRoutes(app, deps)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down...")
		deps.Registry.CloseAll()
		if err := app.Shutdown(); err != nil {
			log.Printf("Error saat shutdown: %v", err)
		}
	}()

	log.Printf("Server running on port %s", cfg.Port)
	log.Printf("API Documentation: http://localhost:%s/docs/index.html", cfg.Port)
	log.Printf("Health Check: http://localhost:%s/", cfg.Port)
	log.Printf("Attendance API: %s", cfg.AttendanceAPIURL)
	log.Printf("CORS enabled for origins: %v", cfg.AllowedOrigins)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
