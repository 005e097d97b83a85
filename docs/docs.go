// Package docs registers the OpenAPI description served at /docs. It is kept
// by hand in the layout swag init produces; update it with the handler
// annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "description": "Meneruskan kredensial ke Attendance API dan mengembalikan token sesi PASETO",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Login User",
                "parameters": [
                    {
                        "description": "Kredensial untuk Login",
                        "name": "credentials",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.UserLoginPayload"}
                    }
                ],
                "responses": {
                    "200": {"description": "Login berhasil", "schema": {"$ref": "#/definitions/models.LoginSuccessResponse"}},
                    "401": {"description": "Kombinasi email dan password salah", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "502": {"description": "Attendance API tidak dapat dihubungi", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Current User",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.UnauthorizedErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Logout User",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.LogoutSuccessResponse"}}
                }
            }
        },
        "/attendance/today": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Attendance"],
                "summary": "Status Presensi Hari Ini",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AttendanceStatusResponse"}}
                }
            }
        },
        "/attendance/history": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Attendance"],
                "summary": "Riwayat Presensi",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Halaman", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Jumlah per halaman (maks 100)", "name": "pageSize", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AttendanceHistory"}}
                }
            }
        },
        "/attendance/qr": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Attendance QR"],
                "summary": "Status Tampilan QR",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.QRSnapshotResponse"}},
                    "401": {"description": "Sesi berakhir", "schema": {"$ref": "#/definitions/models.SessionEndedResponse"}},
                    "404": {"description": "Tampilan QR belum dibuka", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/attendance/qr/open": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Attendance QR"],
                "summary": "Buka Tampilan QR",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.QRSnapshotResponse"}}
                }
            }
        },
        "/attendance/qr/refresh": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Attendance QR"],
                "summary": "Perbarui QR",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.QRSnapshotResponse"}},
                    "404": {"description": "Tampilan QR belum dibuka", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/attendance/qr/image.png": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["image/png"],
                "tags": ["Attendance QR"],
                "summary": "Gambar QR",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "409": {"description": "Belum ada token yang siap", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/attendance/qr/close": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Attendance QR"],
                "summary": "Tutup Tampilan QR",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/security/scan": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Security"],
                "summary": "Scan QR Presensi",
                "parameters": [
                    {
                        "description": "Nilai QR yang dipindai",
                        "name": "scan",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.QRCodeScanPayload"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ScanResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ForbiddenErrorResponse"}},
                    "429": {"description": "QR yang sama baru saja dipindai", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/security/scans": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Security"],
                "summary": "Riwayat Scan Satpam",
                "parameters": [
                    {"type": "integer", "default": 20, "description": "Jumlah maksimal (1-100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ScanLogListResponse"}},
                    "503": {"description": "Jurnal scan tidak aktif", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/schedule/today": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Schedule"],
                "summary": "Jadwal Hari Ini",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Shift"}}
                }
            }
        },
        "/schedule/holidays": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Schedule"],
                "summary": "Hari Libur Nasional",
                "parameters": [
                    {"type": "string", "description": "Tahun, contoh 2026", "name": "year", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Holiday"}}}
                }
            }
        }
    },
    "definitions": {
        "models.AttendanceHistory": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/models.AttendanceItem"}},
                "meta": {"$ref": "#/definitions/models.PaginationMeta"}
            }
        },
        "models.AttendanceItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "attendanceDate": {"type": "string"},
                "checkInAt": {"type": "string"},
                "checkOutAt": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "models.AttendanceStatusResponse": {
            "type": "object",
            "properties": {
                "checked_in": {"type": "boolean", "example": false},
                "mode": {"type": "string", "example": "CHECK_IN"}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Invalid request body"},
                "details": {"type": "string", "example": "validation failed"}
            }
        },
        "models.ForbiddenErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Akses ditolak. Hak akses satpam diperlukan"}
            }
        },
        "models.Holiday": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2026-01-01"},
                "name": {"type": "string", "example": "Tahun Baru Masehi"}
            }
        },
        "models.LoginSuccessResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Login berhasil"},
                "token": {"type": "string", "example": "v2.local.Ft9QcxZhJXEYyb7-bMM..."},
                "user": {"$ref": "#/definitions/models.User"}
            }
        },
        "models.LogoutSuccessResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Logout berhasil. Silakan hapus token dari sisi client."}
            }
        },
        "models.PaginationMeta": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "totalItems": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "models.QRCodeScanPayload": {
            "type": "object",
            "required": ["qr"],
            "properties": {
                "qr": {"type": "string"}
            }
        },
        "models.QRSnapshotResponse": {
            "type": "object",
            "properties": {
                "state": {"$ref": "#/definitions/qrtoken.State"},
                "notices": {"type": "array", "items": {"$ref": "#/definitions/qrtoken.Notice"}},
                "session_ended": {"type": "boolean"},
                "qr_code_image": {"type": "string", "example": "data:image/png;base64,iVBORw0KGgo..."}
            }
        },
        "models.ScanLog": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "guard_id": {"type": "string"},
                "guard_name": {"type": "string"},
                "mode": {"type": "string"},
                "employee_id": {"type": "string"},
                "employee_name": {"type": "string"},
                "request_id": {"type": "string"},
                "scanned_at": {"type": "string"}
            }
        },
        "models.ScanLogListResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/models.ScanLog"}},
                "total": {"type": "integer", "example": 10}
            }
        },
        "models.ScanResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Check In Berhasil"},
                "mode": {"type": "string", "example": "CHECK_IN"},
                "employee_name": {"type": "string", "example": "Budi Santoso"},
                "description": {"type": "string", "example": "Budi Santoso berhasil Check In"}
            }
        },
        "models.SessionEndedResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Sesi anda telah berakhir. Silakan login kembali."},
                "redirect": {"type": "string", "example": "/login"}
            }
        },
        "models.Shift": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2026-02-02"},
                "is_workday": {"type": "boolean", "example": true},
                "holiday_name": {"type": "string"},
                "start_time": {"type": "string", "example": "08:00"},
                "end_time": {"type": "string", "example": "17:00"}
            }
        },
        "models.UnauthorizedErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Token tidak valid atau tidak ada"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "noHp": {"type": "string"},
                "role": {"type": "string"},
                "isActive": {"type": "boolean"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "models.UserLoginPayload": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "qrtoken.Notice": {
            "type": "object",
            "properties": {
                "level": {"type": "string"},
                "kind": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "qrtoken.State": {
            "type": "object",
            "properties": {
                "phase": {"type": "string", "example": "ready"},
                "token": {"type": "string"},
                "issued_at": {"type": "string"},
                "ttl_seconds": {"type": "integer"},
                "seconds_remaining": {"type": "integer"},
                "reason": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the session token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Presensi QR Karyawan API",
	Description:      "Backend-for-frontend presensi QR: token QR berputar untuk karyawan, scan untuk satpam, jadwal shift.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
