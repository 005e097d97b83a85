package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	util "Presensi-QR-Karyawan/pkg/utils"
)

type AppConfig struct {
	Port             string        `validate:"required,numeric"`
	AttendanceAPIURL string        `validate:"required,url"`
	APITimeout       time.Duration `validate:"gt=0"`
	MONGOSTRING      string        `validate:"omitempty"`
	PASETO_SECRET    string        `validate:"required"`
	SessionTTL       time.Duration `validate:"gt=0"`
	QRIdleTimeout    time.Duration `validate:"gt=0"`
	ShiftRRule       string        `validate:"required"`
	ShiftStart       string        `validate:"required,clock"`
	ShiftEnd         string        `validate:"required,clock"`
	ShiftTimezone    string        `validate:"required"`
	HolidayAPIURL    string        `validate:"omitempty,url"`
	AllowedOrigins   []string      `validate:"dive,url"`
}

// LoadConfig loads configuration from .env file
func LoadConfig() *AppConfig {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: Error loading .env file (might not exist in production): %v", err)
	}

	secretBase64 := getEnv("PASETO_SECRET", "")
	if secretBase64 == "" {
		secretBase64, err = util.GenerateBase64Key(32)
		if err != nil {
			log.Fatalf("Failed to generate PASETO key: %v", err)
		}
		log.Println("Warning: PASETO_SECRET kosong, memakai kunci sementara. Sesi hilang saat restart.")
	}

	cfg := &AppConfig{
		Port:             getEnv("PORT", "3000"),
		AttendanceAPIURL: getEnv("ATTENDANCE_API_URL", "http://localhost:8080"),
		APITimeout:       time.Duration(getEnvInt("API_TIMEOUT_SECONDS", 10)) * time.Second,
		MONGOSTRING:      getEnv("MONGOSTRING", ""),
		PASETO_SECRET:    secretBase64,
		SessionTTL:       time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		QRIdleTimeout:    time.Duration(getEnvInt("QR_IDLE_SECONDS", 120)) * time.Second,
		ShiftRRule:       getEnv("SHIFT_RRULE", "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR"),
		ShiftStart:       getEnv("SHIFT_START", "08:00"),
		ShiftEnd:         getEnv("SHIFT_END", "17:00"),
		ShiftTimezone:    getEnv("SHIFT_TIMEZONE", "Asia/Jakarta"),
		HolidayAPIURL:    getEnv("HOLIDAY_API_URL", "https://api-harilibur.vercel.app/api"),
		AllowedOrigins:   splitList(getEnv("ALLOWED_ORIGINS", strings.Join(defaultOrigins, ","))),
	}

	if errs := util.ValidateStruct(cfg); errs != nil {
		for _, e := range errs {
			log.Printf("Config error: %s", e.Msg)
		}
		log.Fatalf("Konfigurasi tidak valid (%d kesalahan)", len(errs))
	}
	return cfg
}

// Location returns the shift time zone.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.ShiftTimezone)
	if err != nil {
		log.Printf("Warning: zona waktu %q tidak dikenal, memakai UTC: %v", c.ShiftTimezone, err)
		return time.UTC
	}
	return loc
}

// Helper function to get environment variable or fallback to default
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		log.Fatalf("%s harus berupa angka: %v", key, err)
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
