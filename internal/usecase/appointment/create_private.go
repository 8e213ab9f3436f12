package appointment

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreatePrivateAppointmentInput struct {
	BarbershopID   uint
	UserID         uint
	ProfessionalID *uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	Items []catalog.ItemRef

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreatePrivateAppointment struct {
	availability *GetAvailability
	store        domain.AppointmentStore
	clients      domain.ClientDirectory
	audit        *audit.Dispatcher
}

func NewCreatePrivateAppointment(
	availability *GetAvailability,
	store domain.AppointmentStore,
	clients domain.ClientDirectory,
	audit *audit.Dispatcher,
) *CreatePrivateAppointment {
	return &CreatePrivateAppointment{
		availability: availability,
		store:        store,
		clients:      clients,
		audit:        audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute books on behalf of a client. Staff may book any open slot that has
// not started yet; the booking starts pending.
func (uc *CreatePrivateAppointment) Execute(
	ctx context.Context,
	in CreatePrivateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Cliente
	// --------------------------------------------------
	name := strings.TrimSpace(in.ClientName)
	phone := booking.NormalizePhone(in.ClientPhone)
	if err := booking.ValidateContact(name, phone); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Disponibilidade atual
	// --------------------------------------------------
	p, err := uc.availability.plan(ctx, AvailabilityInput{
		BarbershopID:   in.BarbershopID,
		Date:           in.Date,
		Items:          in.Items,
		ProfessionalID: in.ProfessionalID,
	})
	if err != nil {
		return nil, err
	}

	open := notBefore(p.slots, in.Date, p.shop.Timezone, uc.availability.now())
	if !domain.Contains(open, in.Time) {
		return nil, domain.ErrSlotNoLongerAvailable
	}

	client, err := uc.clients.GetOrCreateClient(ctx, in.BarbershopID, name, phone, in.ClientEmail)
	if err != nil {
		return nil, domain.Persistence("get_or_create_client", err)
	}

	// --------------------------------------------------
	// 3️⃣ Criação do agendamento (status centralizado)
	// --------------------------------------------------
	ap := &models.Appointment{
		BarbershopID:   in.BarbershopID,
		ProfessionalID: in.ProfessionalID,
		ClientID:       &client.ID,
		ClientName:     name,
		ClientPhone:    phone,
		ServiceNames:   p.totals.Names,
		ServiceIDs:     p.totals.ServiceIDs,
		ComboIDs:       p.totals.ComboIDs,
		DurationMin:    p.duration,
		Price:          p.totals.Price,
		Date:           in.Date,
		StartTime:      in.Time,
		Status:         string(domain.InitialStatus(domain.OriginStaff)),
		Origin:         string(domain.OriginStaff),
		Notes:          in.Notes,
	}

	if err := uc.store.CreateAppointment(ctx, ap, p.scope); err != nil {
		if errors.Is(err, domain.ErrSlotNoLongerAvailable) {
			return nil, err
		}
		return nil, domain.Persistence("create_appointment", err)
	}

	// --------------------------------------------------
	// 4️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.UserID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
