package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
)

// ======================================================
// USE CASE
// ======================================================

// ConfirmBooking turns a reviewed booking session into a stored appointment.
// Availability is re-derived from fresh data right before the write and the
// store's create is atomic on the slot, so of two sessions racing for the
// same slot at most one wins.
type ConfirmBooking struct {
	availability *GetAvailability
	store        domain.AppointmentStore
	notifier     notification.Notifier
	audit        *audit.Dispatcher
	logger       *zap.Logger
	now          func() time.Time
}

func NewConfirmBooking(
	availability *GetAvailability,
	store domain.AppointmentStore,
	notifier notification.Notifier,
	audit *audit.Dispatcher,
	logger *zap.Logger,
) *ConfirmBooking {
	return &ConfirmBooking{
		availability: availability,
		store:        store,
		notifier:     notifier,
		audit:        audit,
		logger:       logger,
		now:          time.Now,
	}
}

func (uc *ConfirmBooking) WithClock(now func() time.Time) *ConfirmBooking {
	uc.now = now
	return uc
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	barbershopID uint,
	s *booking.Session,
) (*models.Appointment, error) {

	if s.State().BarbershopID != barbershopID {
		return nil, &booking.ValidationError{Step: s.Step(), Field: "barbershop_id", Reason: "mismatch"}
	}

	// --------------------------------------------------
	// 1️⃣ Revalidação da sessão (disponibilidade atual)
	// --------------------------------------------------
	if err := s.Revalidate(ctx); err != nil {
		return nil, err
	}
	st := s.State()

	// --------------------------------------------------
	// 2️⃣ Catálogo e escopo atuais
	// --------------------------------------------------
	p, err := uc.availability.plan(ctx, AvailabilityInput{
		BarbershopID:   barbershopID,
		Date:           st.Date,
		Items:          st.Items,
		ProfessionalID: st.ProfessionalID,
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Conflito com leitura fresca
	// --------------------------------------------------
	existing, err := uc.store.ListAppointmentsForDate(ctx, barbershopID, st.Date)
	if err != nil {
		return nil, domain.Persistence("list_appointments", err)
	}
	if _, clash := domain.FindConflict(
		domain.ToBookedList(existing),
		st.Date,
		st.Time,
		p.duration,
		p.scope,
	); clash {
		return nil, domain.ErrSlotNoLongerAvailable
	}

	// --------------------------------------------------
	// 4️⃣ Criação (atômica no slot)
	// --------------------------------------------------
	now := uc.now()
	ap := &models.Appointment{
		BarbershopID:   barbershopID,
		ProfessionalID: st.ProfessionalID,
		ClientName:     strings.TrimSpace(st.ClientName),
		ClientPhone:    st.ClientPhone,
		ServiceNames:   p.totals.Names,
		ServiceIDs:     p.totals.ServiceIDs,
		ComboIDs:       p.totals.ComboIDs,
		DurationMin:    p.duration,
		Price:          p.totals.Price,
		Date:           st.Date,
		StartTime:      st.Time,
		Status:         string(domain.InitialStatus(domain.OriginPublic)),
		Origin:         string(domain.OriginPublic),
		ConfirmedAt:    &now,
	}

	if err := uc.store.CreateAppointment(ctx, ap, p.scope); err != nil {
		if errors.Is(err, domain.ErrSlotNoLongerAvailable) {
			return nil, err
		}
		return nil, domain.Persistence("create_appointment", err)
	}

	// --------------------------------------------------
	// 5️⃣ Notificação ao dono (melhor esforço)
	// --------------------------------------------------
	uc.notifyOwner(ctx, ap)

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		Action:       "appointment_booked",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata: map[string]any{
			"session_id": st.ID,
			"date":       ap.Date,
			"start_time": ap.StartTime,
		},
	})

	return ap, nil
}

func (uc *ConfirmBooking) notifyOwner(ctx context.Context, ap *models.Appointment) {
	owner, err := uc.availability.catalog.GetOwner(ctx, ap.BarbershopID)
	if err != nil {
		uc.logger.Warn("booking notification without recipient",
			zap.Uint("appointment_id", ap.ID),
			zap.Error(err),
		)
		return
	}

	if err := uc.notifier.Notify(ctx, notification.Event{
		BarbershopID: ap.BarbershopID,
		RecipientID:  &owner.ID,
		Title:        "Novo agendamento",
		Description:  fmt.Sprintf("%s agendou para %s às %s", ap.ClientName, ap.Date, ap.StartTime),
		Category:     notification.CategoryAppointment,
	}); err != nil {
		uc.logger.Warn("booking notification not dispatched",
			zap.Uint("appointment_id", ap.ID),
			zap.Error(err),
		)
	}
}
