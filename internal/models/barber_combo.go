package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BarberCombo struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `json:"barbershop_id"`

	Name        string              `gorm:"size:100;not null" json:"name"`
	Products    []BarberProduct     `gorm:"many2many:barber_combo_products;" json:"products"`
	DurationMin int                 `json:"duration_min"`
	Price       decimal.Decimal     `gorm:"type:numeric(10,2)" json:"price"`
	PromoPrice  decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"promo_price"`
	Active      bool                `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
