package models

import "time"

type Notification struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	BarbershopID uint   `gorm:"index" json:"barbershop_id"`
	RecipientID  *uint  `json:"recipient_id"`

	Title       string `gorm:"size:120;not null" json:"title"`
	Description string `gorm:"size:500" json:"description"`
	Category    string `gorm:"size:30" json:"category"`
	Read        bool   `gorm:"default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}
