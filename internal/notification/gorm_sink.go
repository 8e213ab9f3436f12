package notification

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type GormSink struct {
	db *gorm.DB
}

func NewGormSink(db *gorm.DB) *GormSink {
	return &GormSink{db: db}
}

func (s *GormSink) Store(ctx context.Context, ev Event) error {
	n := models.Notification{
		ID:           uuid.NewString(),
		BarbershopID: ev.BarbershopID,
		RecipientID:  ev.RecipientID,
		Title:        ev.Title,
		Description:  ev.Description,
		Category:     ev.Category,
	}
	return s.db.WithContext(ctx).Create(&n).Error
}
