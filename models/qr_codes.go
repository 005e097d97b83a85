package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QRTokenData is the payload of GET /api/attendance/my-qr.
type QRTokenData struct {
	QR          string `json:"qr" validate:"required,printascii"`
	ExpiresInMs int64  `json:"expiresInMs" validate:"gte=1000"`
}

type QRCodeScanPayload struct {
	QR string `json:"qr" validate:"required"`
}

// ScanResult is what the Attendance API answers to a submitted scan.
type ScanResult struct {
	Mode       string `json:"mode"`
	Attendance struct {
		ID   string `json:"id"`
		User struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"user"`
	} `json:"attendance"`
}

type ScanResponse struct {
	Message      string `json:"message" example:"Check In Berhasil"`
	Mode         string `json:"mode" example:"CHECK_IN"`
	EmployeeName string `json:"employee_name" example:"Budi Santoso"`
	Description  string `json:"description" example:"Budi Santoso berhasil Check In"`
}

// ScanLog adalah jurnal hasil scan satpam.
type ScanLog struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	GuardID      string             `json:"guard_id" bson:"guard_id"`
	GuardName    string             `json:"guard_name" bson:"guard_name,omitempty"`
	Mode         string             `json:"mode" bson:"mode"`
	EmployeeID   string             `json:"employee_id,omitempty" bson:"employee_id,omitempty"`
	EmployeeName string             `json:"employee_name" bson:"employee_name,omitempty"`
	RequestID    string             `json:"request_id,omitempty" bson:"request_id,omitempty"`
	ScannedAt    time.Time          `json:"scanned_at" bson:"scanned_at"`
}
