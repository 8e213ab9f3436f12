package models

import "time"

// NoPreferencePolicy decides whether appointments booked without a
// professional block the agenda of every professional or of none.
const (
	NoPreferenceBlocksAll  = "blocks_all"
	NoPreferenceBlocksNone = "blocks_none"
)

type Barbershop struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Name                string    `gorm:"size:100;not null" json:"name"`
	Slug                string    `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone               string    `gorm:"size:20" json:"phone"`
	Address             string    `gorm:"size:255" json:"address"`
	Timezone            string    `gorm:"size:64" json:"timezone"`
	MinAdvanceMinutes   int       `gorm:"default:120" json:"min_advance_minutes"`
	SlotIntervalMinutes int       `gorm:"default:30" json:"slot_interval_minutes"`
	NoPreferencePolicy  string    `gorm:"size:20;default:'blocks_all'" json:"no_preference_policy"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (b *Barbershop) Interval() int {
	if b.SlotIntervalMinutes <= 0 {
		return 30
	}
	return b.SlotIntervalMinutes
}
