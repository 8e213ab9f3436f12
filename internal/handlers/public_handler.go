package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/session"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// PORTS
////////////////////////////////////////////////////////

type slotLister interface {
	Execute(ctx context.Context, in ucAppointment.AvailabilityInput) ([]string, error)
	ForShop(barbershopID uint) booking.SlotFinder
}

type bookingCommitter interface {
	Execute(ctx context.Context, barbershopID uint, s *booking.Session) (*models.Appointment, error)
}

type sessionStore interface {
	Save(ctx context.Context, st booking.State) error
	Load(ctx context.Context, id string) (booking.State, error)
	Delete(ctx context.Context, id string) error
}

type idempotencyStore interface {
	Reserve(ctx context.Context, key string) (uint, bool, error)
	Complete(ctx context.Context, key string, appointmentID uint) error
	Release(ctx context.Context, key string) error
}

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	catalog      domain.CatalogReader
	availability slotLister
	committer    bookingCommitter
	sessions     sessionStore
	idempotency  idempotencyStore
	logger       *zap.Logger
}

func NewPublicHandler(
	reader domain.CatalogReader,
	availability slotLister,
	committer bookingCommitter,
	sessions sessionStore,
	idempotency idempotencyStore,
	logger *zap.Logger,
) *PublicHandler {
	return &PublicHandler{
		catalog:      reader,
		availability: availability,
		committer:    committer,
		sessions:     sessions,
		idempotency:  idempotency,
		logger:       logger,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type SelectItemsRequest struct {
	Items []catalog.ItemRef `json:"items" binding:"required"`
}

type SelectProfessionalRequest struct {
	ProfessionalID *uint `json:"professional_id"`
}

type SelectDateRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
}

type SelectTimeRequest struct {
	Time string `json:"time" binding:"required"` // HH:mm
}

type ContactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type publicProfessional struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) Catalog(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	products, err := h.catalog.ListActiveProducts(ctx, shop.ID)
	if err != nil {
		respondError(c, h.logger, domain.Persistence("list_products", err))
		return
	}
	combos, err := h.catalog.ListActiveCombos(ctx, shop.ID)
	if err != nil {
		respondError(c, h.logger, domain.Persistence("list_combos", err))
		return
	}
	users, err := h.catalog.ListProfessionals(ctx, shop.ID)
	if err != nil {
		respondError(c, h.logger, domain.Persistence("list_professionals", err))
		return
	}

	professionals := make([]publicProfessional, 0, len(users))
	for _, u := range users {
		professionals = append(professionals, publicProfessional{ID: u.ID, Name: u.Name})
	}

	c.JSON(http.StatusOK, gin.H{
		"barbershop":    shop,
		"services":      products,
		"combos":        combos,
		"professionals": professionals,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

// Availability answers GET ?date=YYYY-MM-DD&items=service:1,combo:2&professional_id=3
func (h *PublicHandler) Availability(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.Field(c, "missing_params", "date", "Data obrigatória.")
		return
	}

	items, err := parseItems(c.Query("items"))
	if err != nil {
		httperr.Field(c, "invalid_items", "items", "Serviços inválidos.")
		return
	}

	var professionalID *uint
	if raw := c.Query("professional_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.Field(c, "invalid_professional_id", "professional_id", "Profissional inválido.")
			return
		}
		v := uint(id)
		professionalID = &v
	}

	slots, err := h.availability.Execute(c.Request.Context(), ucAppointment.AvailabilityInput{
		BarbershopID:   shop.ID,
		Date:           date,
		Items:          items,
		ProfessionalID: professionalID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// BOOKING SESSION
////////////////////////////////////////////////////////

func (h *PublicHandler) StartSession(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	s := booking.New(uuid.NewString(), shop.ID, h.availability.ForShop(shop.ID))
	if err := h.sessions.Save(c.Request.Context(), s.State()); err != nil {
		h.logger.Error("session save failed", zap.Error(err))
		httperr.Unavailable(c, "try_again", "Não foi possível iniciar o agendamento.")
		return
	}

	c.JSON(http.StatusCreated, s.State())
}

func (h *PublicHandler) GetSession(c *gin.Context) {
	h.withSession(c, func(_ context.Context, _ *booking.Session) error { return nil })
}

func (h *PublicHandler) SelectItems(c *gin.Context) {
	var req SelectItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Field(c, "invalid_request", "items", "Dados inválidos.")
		return
	}
	h.withSession(c, func(ctx context.Context, s *booking.Session) error {
		return s.SelectItems(ctx, req.Items)
	})
}

func (h *PublicHandler) SelectProfessional(c *gin.Context) {
	var req SelectProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Field(c, "invalid_request", "professional_id", "Dados inválidos.")
		return
	}
	h.withSession(c, func(ctx context.Context, s *booking.Session) error {
		return s.SetProfessional(ctx, req.ProfessionalID)
	})
}

func (h *PublicHandler) SelectDate(c *gin.Context) {
	var req SelectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Field(c, "invalid_request", "date", "Dados inválidos.")
		return
	}
	h.withSession(c, func(ctx context.Context, s *booking.Session) error {
		return s.SetDate(ctx, req.Date)
	})
}

func (h *PublicHandler) SelectTime(c *gin.Context) {
	var req SelectTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Field(c, "invalid_request", "time", "Dados inválidos.")
		return
	}
	h.withSession(c, func(_ context.Context, s *booking.Session) error {
		return s.SetTime(req.Time)
	})
}

func (h *PublicHandler) SetContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Field(c, "invalid_request", "contact", "Dados inválidos.")
		return
	}
	h.withSession(c, func(_ context.Context, s *booking.Session) error {
		return s.SetContact(req.Name, req.Phone)
	})
}

func (h *PublicHandler) NextStep(c *gin.Context) {
	h.withSession(c, func(ctx context.Context, s *booking.Session) error {
		return s.NextStep(ctx)
	})
}

func (h *PublicHandler) PrevStep(c *gin.Context) {
	h.withSession(c, func(_ context.Context, s *booking.Session) error {
		s.PrevStep()
		return nil
	})
}

////////////////////////////////////////////////////////
// CONFIRM
////////////////////////////////////////////////////////

// Confirm commits a reviewed session. An Idempotency-Key header makes
// retries return the appointment created by the first attempt.
func (h *PublicHandler) Confirm(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	key := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	if key != "" {
		key = fmt.Sprintf("%d:%s", shop.ID, key)

		appointmentID, reserved, err := h.idempotency.Reserve(ctx, key)
		switch {
		case errors.Is(err, session.ErrInFlight):
			httperr.Conflict(c, "request_in_flight", "Agendamento em processamento.")
			return
		case err != nil:
			h.logger.Error("idempotency reserve failed", zap.Error(err))
			httperr.Unavailable(c, "try_again", "Não foi possível concluir agora. Tente novamente.")
			return
		case !reserved:
			c.JSON(http.StatusOK, gin.H{"appointment_id": appointmentID, "replayed": true})
			return
		}
	}

	s, ok := h.loadSession(c, shop.ID)
	if !ok {
		h.release(ctx, key)
		return
	}

	ap, err := h.committer.Execute(ctx, shop.ID, s)
	if err != nil {
		h.release(ctx, key)
		// revalidation may have cleared the picked time
		if saveErr := h.sessions.Save(ctx, s.State()); saveErr != nil {
			h.logger.Warn("session save failed", zap.Error(saveErr))
		}
		respondError(c, h.logger, err)
		return
	}

	if key != "" {
		if err := h.idempotency.Complete(ctx, key, ap.ID); err != nil {
			h.logger.Warn("idempotency complete failed", zap.Uint("appointment_id", ap.ID), zap.Error(err))
		}
	}
	if err := h.sessions.Delete(ctx, s.State().ID); err != nil {
		h.logger.Warn("session delete failed", zap.Error(err))
	}

	c.JSON(http.StatusCreated, ap)
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func (h *PublicHandler) shop(c *gin.Context) (*models.Barbershop, bool) {
	shop, err := h.catalog.GetBarbershopBySlug(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, domain.ErrNotFound) {
		httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
		return nil, false
	}
	if err != nil {
		respondError(c, h.logger, domain.Persistence("get_barbershop", err))
		return nil, false
	}
	return shop, true
}

func (h *PublicHandler) loadSession(c *gin.Context, barbershopID uint) (*booking.Session, bool) {
	st, err := h.sessions.Load(c.Request.Context(), c.Param("id"))
	if errors.Is(err, session.ErrNotFound) || (err == nil && st.BarbershopID != barbershopID) {
		httperr.NotFound(c, "session_not_found", "Sessão de agendamento expirada ou inexistente.")
		return nil, false
	}
	if err != nil {
		h.logger.Error("session load failed", zap.Error(err))
		httperr.Unavailable(c, "try_again", "Não foi possível concluir agora. Tente novamente.")
		return nil, false
	}
	return booking.Restore(st, h.availability.ForShop(barbershopID)), true
}

// withSession loads the session, applies fn and saves the result even when
// fn fails, so the UI sees the cleared fields and the last error.
func (h *PublicHandler) withSession(c *gin.Context, fn func(ctx context.Context, s *booking.Session) error) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}
	s, ok := h.loadSession(c, shop.ID)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	fnErr := fn(ctx, s)
	if err := h.sessions.Save(ctx, s.State()); err != nil {
		h.logger.Error("session save failed", zap.Error(err))
		httperr.Unavailable(c, "try_again", "Não foi possível concluir agora. Tente novamente.")
		return
	}

	if fnErr != nil {
		if errors.Is(fnErr, booking.ErrTerminalStep) {
			httperr.BadRequest(c, "terminal_step", "Revise e confirme o agendamento.")
			return
		}
		respondError(c, h.logger, fnErr)
		return
	}

	c.JSON(http.StatusOK, s.State())
}

func (h *PublicHandler) release(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := h.idempotency.Release(ctx, key); err != nil {
		h.logger.Warn("idempotency release failed", zap.Error(err))
	}
}

// parseItems reads "service:1,combo:2".
func parseItems(raw string) ([]catalog.ItemRef, error) {
	var items []catalog.ItemRef
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kind, idStr, found := strings.Cut(part, ":")
		if !found {
			return nil, fmt.Errorf("malformed item %q", part)
		}
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed item %q: %w", part, err)
		}
		items = append(items, catalog.ItemRef{Kind: catalog.Kind(kind), ID: uint(id)})
	}
	return items, nil
}
