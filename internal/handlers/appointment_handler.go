package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create     *ucAppointment.CreatePrivateAppointment
	list       *ucAppointment.ListAppointments
	confirm    *ucAppointment.ConfirmAppointment
	cancel     *ucAppointment.CancelAppointment
	complete   *ucAppointment.CompleteAppointment
	reschedule *ucAppointment.RescheduleAppointment
	logger     *zap.Logger
}

func NewAppointmentHandler(
	create *ucAppointment.CreatePrivateAppointment,
	list *ucAppointment.ListAppointments,
	confirm *ucAppointment.ConfirmAppointment,
	cancel *ucAppointment.CancelAppointment,
	complete *ucAppointment.CompleteAppointment,
	reschedule *ucAppointment.RescheduleAppointment,
	logger *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:     create,
		list:       list,
		confirm:    confirm,
		cancel:     cancel,
		complete:   complete,
		reschedule: reschedule,
		logger:     logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName     string            `json:"client_name" binding:"required"`
	ClientPhone    string            `json:"client_phone" binding:"required"`
	ClientEmail    string            `json:"client_email"`
	ProfessionalID *uint             `json:"professional_id"`
	Items          []catalog.ItemRef `json:"items" binding:"required"`
	Date           string            `json:"date" binding:"required"`
	Time           string            `json:"time" binding:"required"`
	Notes          string            `json:"notes"`
}

type RescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreatePrivateAppointmentInput{
		BarbershopID:   barbershopID,
		UserID:         userID,
		ProfessionalID: req.ProfessionalID,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ClientEmail:    req.ClientEmail,
		Items:          req.Items,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	professionalID, ok := optionalUintQuery(c, "professional_id")
	if !ok {
		return
	}

	items, err := h.list.ByDate(c.Request.Context(), barbershopID, professionalID, date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	professionalID, ok := optionalUintQuery(c, "professional_id")
	if !ok {
		return
	}

	appointments, err := h.list.ByMonth(c.Request.Context(), barbershopID, professionalID, year, month)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": appointments,
	})
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.changeStatus(c, h.confirm.Execute)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, h.cancel.Execute)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.changeStatus(c, h.complete.Execute)
}

func (h *AppointmentHandler) changeStatus(
	c *gin.Context,
	run func(ctx context.Context, barbershopID, userID, appointmentID uint) (*models.Appointment, error),
) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := run(c.Request.Context(), barbershopID, userID, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), ucAppointment.RescheduleInput{
		BarbershopID:  barbershopID,
		UserID:        userID,
		AppointmentID: id,
		Date:          req.Date,
		Time:          req.Time,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// PARAMS
// ======================================================

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Identificador inválido.")
		return 0, false
	}
	return uint(v), true
}

func optionalUintQuery(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.Field(c, "invalid_"+name, name, "Valor inválido.")
		return nil, false
	}
	id := uint(v)
	return &id, true
}
