package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

var businessMessages = map[string]string{
	"barbershop_not_found":  "Barbearia não encontrada.",
	"appointment_not_found": "Agendamento não encontrado.",
	"item_not_found":        "Serviço não encontrado.",
	"invalid_item_kind":     "Tipo de item inválido.",
	"invalid_state":         "Ação não permitida para o status atual do agendamento.",
	"invalid_date":          "Data inválida.",
	"invalid_month":         "Mês inválido.",
}

// respondError translates use case errors into the HTTP error contract.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		vErr     *booking.ValidationError
		schedErr *schedule.InvalidScheduleError
		pErr     *domain.PersistenceError
		bErr     httperr.BusinessError
	)

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, httperr.HTTPError{
			Code:    "validation_error",
			Message: "Verifique os dados informados.",
			Field:   vErr.Field,
		})

	case errors.Is(err, domain.ErrSlotNoLongerAvailable):
		httperr.Conflict(c, "slot_no_longer_available", "Este horário acabou de ser reservado. Escolha outro horário.")

	case errors.As(err, &schedErr):
		httperr.Unprocessable(c, "invalid_schedule", "Horário de funcionamento inválido.")

	case errors.As(err, &pErr):
		logger.Error("persistence failure", zap.String("op", pErr.Op), zap.Error(pErr.Err))
		httperr.Unavailable(c, "try_again", "Não foi possível concluir agora. Tente novamente.")

	case errors.As(err, &bErr):
		msg, ok := businessMessages[bErr.Code]
		if !ok {
			msg = "Requisição inválida."
		}
		if strings.HasSuffix(bErr.Code, "_not_found") && bErr.Code != "item_not_found" {
			httperr.NotFound(c, bErr.Code, msg)
			return
		}
		httperr.BadRequest(c, bErr.Code, msg)

	default:
		logger.Error("unexpected error", zap.Error(err))
		httperr.Internal(c, "internal_error", "Erro interno.")
	}
}
