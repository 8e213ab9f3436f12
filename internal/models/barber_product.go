package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BarberProduct is a bookable service of the catalog.
type BarberProduct struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `json:"barbershop_id"`

	Name        string              `gorm:"size:100;not null" json:"name"`
	Description string              `gorm:"size:255" json:"description"`
	DurationMin int                 `json:"duration_min"`
	Price       decimal.Decimal     `gorm:"type:numeric(10,2)" json:"price"`
	PromoPrice  decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"promo_price"`
	Active      bool                `gorm:"default:true" json:"active"`

	Category string `gorm:"size:50" json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
