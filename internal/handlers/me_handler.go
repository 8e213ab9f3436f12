package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type MeHandler struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewMeHandler(db *gorm.DB, logger *zap.Logger) *MeHandler {
	return &MeHandler{db: db, logger: logger}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID, ok := c.MustGet(middleware.ContextUserID).(uint)
	if !ok {
		httperr.Unauthorized(c, "invalid_user_id_type", "Sessão inválida.")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).Preload("Barbershop").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
			return
		}
		h.logger.Error("get me failed", zap.Error(err))
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       userPayload(&user),
		"barbershop": shopPayload(&user.Barbershop),
	})
}
