package models

import "Presensi-QR-Karyawan/pkg/qrtoken"

// Success Response Models

// LoginSuccessResponse represents successful login response
type LoginSuccessResponse struct {
	Message string `json:"message" example:"Login berhasil"`
	Token   string `json:"token" example:"v2.local.Ft9QcxZhJXEYyb7-bMM..."`
	User    User   `json:"user"`
}

type LogoutSuccessResponse struct {
	Message string `json:"message" example:"Logout berhasil. Silakan hapus token dari sisi client."`
}

// QRSnapshotResponse is returned by every QR display endpoint.
type QRSnapshotResponse struct {
	qrtoken.Snapshot
	QRCodeImage string `json:"qr_code_image,omitempty" example:"data:image/png;base64,iVBORw0KGgo..."`
}

type ScanLogListResponse struct {
	Data  []ScanLog `json:"data"`
	Total int       `json:"total" example:"10"`
}

// Error Response Models

// ErrorResponse represents basic error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Details string `json:"details,omitempty" example:"validation failed"`
}

// SessionEndedResponse tells the client to re-authenticate.
type SessionEndedResponse struct {
	Error    string `json:"error" example:"Sesi anda telah berakhir. Silakan login kembali."`
	Redirect string `json:"redirect" example:"/login"`
}

// UnauthorizedErrorResponse represents unauthorized error response
type UnauthorizedErrorResponse struct {
	Error string `json:"error" example:"Token tidak valid atau tidak ada"`
}

// ForbiddenErrorResponse represents forbidden error response
type ForbiddenErrorResponse struct {
	Error string `json:"error" example:"Akses ditolak. Hak akses satpam diperlukan"`
}
