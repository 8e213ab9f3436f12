package models

import "time"

// WorkingHours is the business opening rule for one weekday.
type WorkingHours struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"uniqueIndex:idx_working_hours_day" json:"barbershop_id"`

	Weekday int `gorm:"uniqueIndex:idx_working_hours_day" json:"weekday"`

	Active           bool   `json:"active"`
	StartTime        string `gorm:"size:5" json:"start_time"`
	EndTime          string `gorm:"size:5" json:"end_time"`
	HasLunchBreak    bool   `json:"has_lunch_break"`
	LunchStart       string `gorm:"size:5" json:"lunch_start"`
	LunchDurationMin int    `json:"lunch_duration_min"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
