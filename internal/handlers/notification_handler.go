package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type NotificationHandler struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewNotificationHandler(db *gorm.DB, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{db: db, logger: logger}
}

// visible scopes to the shop's broadcast notifications plus the user's own.
func (h *NotificationHandler) visible(c *gin.Context) *gorm.DB {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	return h.db.
		WithContext(c.Request.Context()).
		Model(&models.Notification{}).
		Where("barbershop_id = ?", barbershopID).
		Where("recipient_id IS NULL OR recipient_id = ?", userID)
}

func (h *NotificationHandler) List(c *gin.Context) {
	q := h.visible(c)
	if c.Query("unread") == "true" {
		q = q.Where("read = ?", false)
	}

	var items []models.Notification
	if err := q.Order("created_at DESC").Limit(100).Find(&items).Error; err != nil {
		h.logger.Error("list notifications failed", zap.Error(err))
		httperr.Internal(c, "failed_to_list_notifications", "Erro ao listar notificações.")
		return
	}

	httpresp.List(c, items)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	res := h.visible(c).Where("id = ?", c.Param("id")).Update("read", true)
	if res.Error != nil {
		h.logger.Error("mark notification failed", zap.Error(res.Error))
		httperr.Internal(c, "failed_to_update_notification", "Erro ao atualizar notificação.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "notification_not_found", "Notificação não encontrada.")
		return
	}

	c.Status(http.StatusNoContent)
}
