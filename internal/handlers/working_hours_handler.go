package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type WorkingHoursHandler struct {
	db     *gorm.DB
	audit  *audit.Dispatcher
	logger *zap.Logger
}

func NewWorkingHoursHandler(db *gorm.DB, audit *audit.Dispatcher, logger *zap.Logger) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db, audit: audit, logger: logger}
}

type WorkingDayConfig struct {
	Weekday          int    `json:"weekday" binding:"min=0,max=6"`
	Active           bool   `json:"active"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	HasLunchBreak    bool   `json:"has_lunch_break"`
	LunchStart       string `json:"lunch_start"`
	LunchDurationMin int    `json:"lunch_duration_min" binding:"min=0"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

func (d WorkingDayConfig) rule() schedule.Day {
	return schedule.Day{
		Weekday:          d.Weekday,
		IsOpen:           d.Active,
		StartTime:        d.StartTime,
		EndTime:          d.EndTime,
		HasLunchBreak:    d.HasLunchBreak,
		LunchStart:       d.LunchStart,
		LunchDurationMin: d.LunchDurationMin,
	}
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var hours []models.WorkingHours
	if err := h.db.
		WithContext(c.Request.Context()).
		Where("barbershop_id = ?", barbershopID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		h.logger.Error("list working hours failed", zap.Error(err))
		httperr.Internal(c, "failed_to_get_working_hours", "Erro ao buscar horários.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update replaces the whole week. Every day is validated before anything is
// written; a rejected week leaves the stored one untouched.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	seen := make(map[int]bool, len(req.Days))
	toCreate := make([]models.WorkingHours, 0, len(req.Days))

	for _, d := range req.Days {
		if seen[d.Weekday] {
			httperr.Field(c, "duplicated_weekday", "weekday", "Dia da semana repetido.")
			return
		}
		seen[d.Weekday] = true

		if err := d.rule().Validate(); err != nil {
			respondError(c, h.logger, err)
			return
		}

		toCreate = append(toCreate, models.WorkingHours{
			BarbershopID:     barbershopID,
			Weekday:          d.Weekday,
			Active:           d.Active,
			StartTime:        d.StartTime,
			EndTime:          d.EndTime,
			HasLunchBreak:    d.HasLunchBreak,
			LunchStart:       d.LunchStart,
			LunchDurationMin: d.LunchDurationMin,
		})
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barbershop_id = ?", barbershopID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Field(c, "duplicated_weekday", "weekday", "Dia da semana repetido.")
			return
		}
		h.logger.Error("save working hours failed", zap.Error(err))
		httperr.Internal(c, "failed_to_save_working_hours", "Erro ao salvar horários.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       "working_hours_updated",
		Entity:       "barbershop",
		EntityID:     &barbershopID,
	})

	c.JSON(http.StatusOK, toCreate)
}
