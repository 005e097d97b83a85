package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"Presensi-QR-Karyawan/pkg/attendanceapi"
	"Presensi-QR-Karyawan/pkg/paseto"
	"Presensi-QR-Karyawan/pkg/qrtoken"
	"Presensi-QR-Karyawan/pkg/schedule"
	util "Presensi-QR-Karyawan/pkg/utils"
)

// fakeAttendanceAPI mimics the remote Attendance API. Upstream tokens are
// "up-<role>" except "up-revoked", which every endpoint rejects.
type fakeAttendanceAPI struct {
	mu           sync.Mutex
	issued       int
	lastPageSize string
	scans        int
}

func (f *fakeAttendanceAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	write := func(status int, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}

	if r.URL.Path == "/auth/login" {
		var in struct{ Email, Password string }
		json.NewDecoder(r.Body).Decode(&in)
		if in.Password != "rahasia" {
			write(http.StatusUnauthorized, `{"status":"error","message":"Email atau password salah"}`)
			return
		}
		role := "EMPLOYEE"
		token := "up-employee"
		switch {
		case strings.HasPrefix(in.Email, "satpam"):
			role, token = "SECURITY", "up-security"
		case strings.HasPrefix(in.Email, "revoked"):
			token = "up-revoked"
		}
		write(http.StatusOK, `{"status":"success","data":{"token":"`+token+`","user":{"id":"u-`+role+`","name":"Budi","role":"`+role+`","isActive":true}}}`)
		return
	}

	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer up-") || auth == "Bearer up-revoked" {
		write(http.StatusUnauthorized, `{"status":"error","message":"Token tidak valid"}`)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	switch r.URL.Path {
	case "/auth/me":
		write(http.StatusOK, `{"status":"success","data":{"id":"u-EMPLOYEE","name":"Budi","role":"EMPLOYEE"}}`)
	case "/api/attendance/my-qr":
		f.issued++
		write(http.StatusOK, `{"status":"success","data":{"qr":"qr-`+string(rune('0'+f.issued))+`","expiresInMs":30000}}`)
	case "/api/attendance/today":
		write(http.StatusOK, `{"status":"success","data":{"id":"a1","checkInAt":"2026-02-02T01:00:00Z","checkOutAt":null}}`)
	case "/api/attendance/me":
		f.lastPageSize = r.URL.Query().Get("pageSize")
		write(http.StatusOK, `{"status":"success","data":{"items":[{"id":"a1","attendanceDate":"2026-02-02"}]},"meta":{"page":1,"pageSize":10,"totalItems":1,"totalPages":1}}`)
	case "/api/security/scan-attendance":
		f.scans++
		write(http.StatusOK, `{"status":"success","data":{"mode":"CHECK_IN","attendance":{"id":"a1","user":{"id":"u9","name":"Siti"}}}}`)
	default:
		write(http.StatusNotFound, `{"status":"error","message":"not found"}`)
	}
}

func (f *fakeAttendanceAPI) counts() (scans int, pageSize string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scans, f.lastPageSize
}

func newTestApp(t *testing.T) (*fiber.App, *fakeAttendanceAPI) {
	t.Helper()
	fake := &fakeAttendanceAPI{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	secret, err := util.GenerateBase64Key(32)
	if err != nil {
		t.Fatal(err)
	}
	maker, err := paseto.NewPasetoMaker(secret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	calendar, err := schedule.NewCalendar("FREQ=DAILY", "08:00", "17:00", time.UTC, nil)
	if err != nil {
		t.Fatal(err)
	}

	registry := qrtoken.NewRegistry(qrtoken.Options{Spawn: func(f func()) { f() }})
	t.Cleanup(registry.CloseAll)

	app := fiber.New()
	SetupRoutes(app, Deps{
		API:      attendanceapi.NewClient(srv.URL, 5*time.Second),
		Maker:    maker,
		Registry: registry,
		Calendar: calendar,
	})
	return app, fake
}

func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]interface{}{}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		json.Unmarshal(raw, &out)
	}
	return resp, out
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp, body := call(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": "rahasia"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, body = %v", resp.StatusCode, body)
	}
	return body["token"].(string)
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)
	resp, body := call(t, app, http.MethodGet, "/", "", nil)
	if resp.StatusCode != http.StatusOK || body["status"] != "running" {
		t.Fatalf("health = %d %v", resp.StatusCode, body)
	}
	if body["scan_journal"] != false {
		t.Errorf("scan_journal = %v, want false", body["scan_journal"])
	}
}

func TestDocsServeShiftSchema(t *testing.T) {
	app, _ := newTestApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/docs/doc.json", nil), -1)
	if err != nil {
		t.Fatalf("GET /docs/doc.json: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var doc struct {
		Definitions map[string]struct {
			Properties map[string]interface{} `json:"properties"`
		} `json:"definitions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode doc.json: %v", err)
	}
	shift := doc.Definitions["models.Shift"].Properties
	for _, key := range []string{"start_time", "end_time"} {
		if _, ok := shift[key]; !ok {
			t.Errorf("models.Shift lacks %q: %v", key, shift)
		}
	}
}

func TestLogin(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
		wantError  string
	}{
		{"ok", map[string]string{"email": "budi@kantor.id", "password": "rahasia"}, http.StatusOK, ""},
		{"wrong password", map[string]string{"email": "budi@kantor.id", "password": "salah"}, http.StatusUnauthorized, "Email atau password salah"},
		{"missing email", map[string]string{"password": "rahasia"}, http.StatusBadRequest, ""},
		{"bad email", map[string]string{"email": "budi", "password": "rahasia"}, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := call(t, app, http.MethodPost, "/api/v1/auth/login", "", tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%v)", resp.StatusCode, tt.wantStatus, body)
			}
			if tt.wantError != "" && body["error"] != tt.wantError {
				t.Errorf("error = %v, want %q", body["error"], tt.wantError)
			}
			if tt.wantStatus == http.StatusOK {
				token, _ := body["token"].(string)
				if !strings.HasPrefix(token, "v2.local.") {
					t.Errorf("token = %q", token)
				}
			}
		})
	}
}

func TestSessionRequired(t *testing.T) {
	app, _ := newTestApp(t)
	for _, token := range []string{"", "garbage"} {
		resp, _ := call(t, app, http.MethodGet, "/api/v1/auth/me", token, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("token %q: status = %d, want 401", token, resp.StatusCode)
		}
	}

	token := login(t, app, "budi@kantor.id")
	resp, body := call(t, app, http.MethodGet, "/api/v1/auth/me", token, nil)
	if resp.StatusCode != http.StatusOK || body["name"] != "Budi" {
		t.Errorf("me = %d %v", resp.StatusCode, body)
	}
}

func TestQRDisplayLifecycle(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "budi@kantor.id")

	resp, _ := call(t, app, http.MethodGet, "/api/v1/attendance/qr", token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("before open: status = %d, want 404", resp.StatusCode)
	}

	resp, body := call(t, app, http.MethodPost, "/api/v1/attendance/qr/open", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("open: status = %d %v", resp.StatusCode, body)
	}
	state := body["state"].(map[string]interface{})
	if state["phase"] != "ready" || state["token"] != "qr-1" {
		t.Fatalf("open state = %v", state)
	}
	if state["seconds_remaining"].(float64) != 30 {
		t.Errorf("seconds_remaining = %v, want 30", state["seconds_remaining"])
	}
	if img, _ := body["qr_code_image"].(string); !strings.HasPrefix(img, "data:image/png;base64,") {
		t.Errorf("qr_code_image = %.40q", img)
	}

	resp, _ = call(t, app, http.MethodGet, "/api/v1/attendance/qr/image.png", token, nil)
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/png" {
		t.Errorf("image: status = %d, type = %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}

	_, body = call(t, app, http.MethodPost, "/api/v1/attendance/qr/refresh", token, nil)
	if got := body["state"].(map[string]interface{})["token"]; got != "qr-2" {
		t.Errorf("after refresh token = %v, want qr-2", got)
	}

	resp, _ = call(t, app, http.MethodPost, "/api/v1/attendance/qr/close", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("close: status = %d", resp.StatusCode)
	}
	resp, _ = call(t, app, http.MethodGet, "/api/v1/attendance/qr/image.png", token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("image after close: status = %d, want 404", resp.StatusCode)
	}
}

func TestQRDisplaySessionExpired(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "revoked@kantor.id")

	resp, body := call(t, app, http.MethodPost, "/api/v1/attendance/qr/open", token, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 (%v)", resp.StatusCode, body)
	}
	if body["error"] != qrtoken.MsgSessionExpired || body["redirect"] != "/login" {
		t.Errorf("body = %v", body)
	}

	resp, _ = call(t, app, http.MethodGet, "/api/v1/attendance/qr", token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("ended display should be forgotten, status = %d", resp.StatusCode)
	}
}

func TestTodayAndHistory(t *testing.T) {
	app, fake := newTestApp(t)
	token := login(t, app, "budi@kantor.id")

	_, body := call(t, app, http.MethodGet, "/api/v1/attendance/today", token, nil)
	if body["checked_in"] != true || body["mode"] != "CHECK_OUT" {
		t.Errorf("today = %v", body)
	}

	resp, body := call(t, app, http.MethodGet, "/api/v1/attendance/history", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history status = %d %v", resp.StatusCode, body)
	}
	if _, pageSize := fake.counts(); pageSize != "10" {
		t.Errorf("upstream pageSize = %q, want 10", pageSize)
	}
	if items := body["items"].([]interface{}); len(items) != 1 {
		t.Errorf("items = %v", items)
	}

	resp, _ = call(t, app, http.MethodGet, "/api/v1/attendance/history?pageSize=500", token, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("pageSize=500: status = %d, want 400", resp.StatusCode)
	}
}

func TestSecurityScan(t *testing.T) {
	app, fake := newTestApp(t)
	employee := login(t, app, "budi@kantor.id")
	guard := login(t, app, "satpam@kantor.id")

	resp, _ := call(t, app, http.MethodPost, "/api/v1/security/scan", employee, map[string]string{"qr": "qr-1"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("employee scan: status = %d, want 403", resp.StatusCode)
	}

	resp, body := call(t, app, http.MethodPost, "/api/v1/security/scan", guard, map[string]string{"qr": "qr-1"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("scan: status = %d %v", resp.StatusCode, body)
	}
	if body["message"] != "Check In Berhasil" || body["employee_name"] != "Siti" {
		t.Errorf("scan body = %v", body)
	}

	resp, _ = call(t, app, http.MethodPost, "/api/v1/security/scan", guard, map[string]string{"qr": "qr-1"})
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("repeat scan: status = %d, want 429", resp.StatusCode)
	}
	if scans, _ := fake.counts(); scans != 1 {
		t.Errorf("upstream scans = %d, want 1", scans)
	}

	resp, _ = call(t, app, http.MethodPost, "/api/v1/security/scan", guard, map[string]string{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty qr: status = %d, want 400", resp.StatusCode)
	}

	resp, _ = call(t, app, http.MethodGet, "/api/v1/security/scans", guard, nil)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("scans without journal: status = %d, want 503", resp.StatusCode)
	}
}

func TestSchedule(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "budi@kantor.id")

	_, body := call(t, app, http.MethodGet, "/api/v1/schedule/today", token, nil)
	if body["is_workday"] != true || body["start_time"] != "08:00" || body["end_time"] != "17:00" {
		t.Errorf("today = %v", body)
	}

	resp, _ := call(t, app, http.MethodGet, "/api/v1/schedule/holidays?year=abc", token, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad year: status = %d, want 400", resp.StatusCode)
	}
}
