package models

import "time"

// ProfessionalExcludedService marks a service a professional does not perform.
type ProfessionalExcludedService struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	UserID          uint `gorm:"uniqueIndex:idx_professional_excluded" json:"user_id"`
	BarberProductID uint `gorm:"uniqueIndex:idx_professional_excluded" json:"barber_product_id"`

	CreatedAt time.Time `json:"created_at"`
}

// ProfessionalUnavailability is a recurring weekly block in a professional's agenda.
type ProfessionalUnavailability struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index" json:"user_id"`

	Weekday   int    `json:"weekday"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
}
