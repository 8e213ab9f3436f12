package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Revenue is the ledger entry written when an appointment is completed.
type Revenue struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	BarbershopID  uint            `gorm:"index" json:"barbershop_id"`
	AppointmentID uint            `gorm:"uniqueIndex" json:"appointment_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(10,2)" json:"amount"`
	Description   string          `gorm:"size:255" json:"description"`
	Date          string          `gorm:"size:10" json:"date"`

	CreatedAt time.Time `json:"created_at"`
}
