package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type BarbershopHandler struct {
	db     *gorm.DB
	audit  *audit.Dispatcher
	logger *zap.Logger
}

func NewBarbershopHandler(db *gorm.DB, audit *audit.Dispatcher, logger *zap.Logger) *BarbershopHandler {
	return &BarbershopHandler{db: db, audit: audit, logger: logger}
}

type UpdateBarbershopConfigRequest struct {
	Name                *string `json:"name"`
	Phone               *string `json:"phone"`
	Address             *string `json:"address"`
	Timezone            *string `json:"timezone"`
	MinAdvanceMinutes   *int    `json:"min_advance_minutes"`
	SlotIntervalMinutes *int    `json:"slot_interval_minutes"`
	NoPreferencePolicy  *string `json:"no_preference_policy"`
}

func (h *BarbershopHandler) load(c *gin.Context) (*models.Barbershop, bool) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var shop models.Barbershop
	if err := h.db.WithContext(c.Request.Context()).First(&shop, barbershopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
			return nil, false
		}
		h.logger.Error("get barbershop failed", zap.Error(err))
		httperr.Internal(c, "failed_to_get_barbershop", "Erro ao buscar dados da barbearia.")
		return nil, false
	}
	return &shop, true
}

func (h *BarbershopHandler) GetMeBarbershop(c *gin.Context) {
	shop, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, shop)
}

func (h *BarbershopHandler) UpdateMeBarbershop(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	shop, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateBarbershopConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			httperr.Field(c, "invalid_name", "name", "Nome obrigatório.")
			return
		}
		shop.Name = *req.Name
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.Field(c, "invalid_timezone", "timezone", "Fuso horário inválido.")
			return
		}
		shop.Timezone = *req.Timezone
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.Field(c, "invalid_min_advance", "min_advance_minutes", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		shop.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if req.SlotIntervalMinutes != nil {
		if *req.SlotIntervalMinutes < 5 || *req.SlotIntervalMinutes > 240 {
			httperr.Field(c, "invalid_slot_interval", "slot_interval_minutes", "Intervalo entre horários deve ficar entre 5 e 240 minutos.")
			return
		}
		shop.SlotIntervalMinutes = *req.SlotIntervalMinutes
	}

	if req.NoPreferencePolicy != nil {
		switch *req.NoPreferencePolicy {
		case models.NoPreferenceBlocksAll, models.NoPreferenceBlocksNone:
			shop.NoPreferencePolicy = *req.NoPreferencePolicy
		default:
			httperr.Field(c, "invalid_no_preference_policy", "no_preference_policy", "Política inválida.")
			return
		}
	}

	if err := h.db.WithContext(c.Request.Context()).Save(shop).Error; err != nil {
		h.logger.Error("update barbershop failed", zap.Error(err))
		httperr.Internal(c, "failed_to_update_barbershop", "Erro ao salvar as configurações da barbearia.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       &userID,
		Action:       "barbershop_updated",
		Entity:       "barbershop",
		EntityID:     &shop.ID,
		Metadata:     req,
	})

	c.JSON(http.StatusOK, shop)
}
