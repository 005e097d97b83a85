package models

import (
	"encoding/json"
	"time"
)

// APIEnvelope adalah bentuk umum respons dari Attendance API.
type APIEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *PaginationMeta `json:"meta,omitempty"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// TodayAttendance is the caller's attendance record for the current day.
type TodayAttendance struct {
	ID         string     `json:"id"`
	CheckInAt  *time.Time `json:"checkInAt"`
	CheckOutAt *time.Time `json:"checkOutAt"`
}

// Open reports whether the record has a check-in without a check-out.
func (t *TodayAttendance) Open() bool {
	return t != nil && t.CheckInAt != nil && t.CheckOutAt == nil
}

const (
	ModeCheckIn  = "CHECK_IN"
	ModeCheckOut = "CHECK_OUT"
)

type AttendanceStatusResponse struct {
	CheckedIn bool   `json:"checked_in" example:"false"`
	Mode      string `json:"mode" example:"CHECK_IN"`
}

type AttendanceItem struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	AttendanceDate string     `json:"attendanceDate"`
	CheckInAt      *time.Time `json:"checkInAt"`
	CheckOutAt     *time.Time `json:"checkOutAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type AttendanceHistory struct {
	Items []AttendanceItem `json:"items"`
	Meta  PaginationMeta   `json:"meta"`
}

type HistoryQuery struct {
	Page     int `query:"page" validate:"min=1"`
	PageSize int `query:"pageSize" validate:"min=1,max=100"`
}
