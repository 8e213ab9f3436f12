package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint       `gorm:"index:idx_appointments_day" json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// nil means "no preference".
	ProfessionalID *uint `json:"professional_id"`
	Professional   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"professional,omitempty"`
	// ProfessionalSlot mirrors ProfessionalID with 0 for "no preference" so
	// the partial unique index on the slot treats it as a value.
	ProfessionalSlot uint `gorm:"not null;default:0" json:"-"`

	ClientID    *uint  `json:"client_id"`
	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string `gorm:"size:20" json:"client_phone"`

	// Snapshot of what was booked. Never recomputed from the catalog.
	ServiceNames []string        `gorm:"serializer:json" json:"service_names"`
	ServiceIDs   []uint          `gorm:"serializer:json" json:"service_ids"`
	ComboIDs     []uint          `gorm:"serializer:json" json:"combo_ids"`
	DurationMin  int             `gorm:"not null" json:"duration_min"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`

	Date      string `gorm:"size:10;not null;index:idx_appointments_day" json:"date"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`
	Origin string `gorm:"size:20" json:"origin"`

	Notes       string     `gorm:"size:255" json:"notes"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
