package models

// Shift is the work shift for one calendar day.
type Shift struct {
	Date        string `json:"date" example:"2026-02-02"`
	IsWorkday   bool   `json:"is_workday" example:"true"`
	HolidayName string `json:"holiday_name,omitempty"`
	StartTime   string `json:"start_time" example:"08:00"`
	EndTime     string `json:"end_time" example:"17:00"`
}

type Holiday struct {
	Date string `json:"date" example:"2026-01-01"`
	Name string `json:"name" example:"Tahun Baru Masehi"`
}
