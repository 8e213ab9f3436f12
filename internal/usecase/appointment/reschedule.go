package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type RescheduleInput struct {
	BarbershopID  uint
	UserID        uint
	AppointmentID uint
	Date          string
	Time          string
}

// RescheduleAppointment moves an active appointment keeping its professional
// and its booked duration.
type RescheduleAppointment struct {
	availability *GetAvailability
	store        domain.AppointmentStore
	audit        *audit.Dispatcher
}

func NewRescheduleAppointment(
	availability *GetAvailability,
	store domain.AppointmentStore,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		availability: availability,
		store:        store,
		audit:        audit,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*models.Appointment, error) {

	ap, err := uc.store.GetAppointment(ctx, in.BarbershopID, in.AppointmentID)
	if err != nil {
		return nil, lookupErr(err, "appointment_not_found", "get_appointment")
	}
	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	shop, err := uc.availability.catalog.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, lookupErr(err, "barbershop_not_found", "get_barbershop")
	}

	var prof *catalog.Professional
	if ap.ProfessionalID != nil {
		rec, err := uc.availability.catalog.GetProfessional(ctx, in.BarbershopID, *ap.ProfessionalID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			// professional left; keep the booking on the shared calendar rules
		case err != nil:
			return nil, domain.Persistence("get_professional", err)
		default:
			prof = professionalFromRecord(rec)
		}
	}

	scope := domain.Scope{
		Professional: ap.ProfessionalID,
		Policy:       domain.ParsePolicy(shop.NoPreferencePolicy),
		ExcludeID:    ap.ID,
	}

	slots, err := uc.availability.daySlots(ctx, shop, in.Date, ap.DurationMin, prof, scope)
	if err != nil {
		return nil, err
	}
	if !domain.Contains(notBefore(slots, in.Date, shop.Timezone, uc.availability.now()), in.Time) {
		return nil, domain.ErrSlotNoLongerAvailable
	}

	from := ap.Date + " " + ap.StartTime
	ap.Date = in.Date
	ap.StartTime = in.Time

	if err := uc.store.RescheduleAppointment(ctx, ap, scope); err != nil {
		if errors.Is(err, domain.ErrSlotNoLongerAvailable) {
			return nil, err
		}
		return nil, domain.Persistence("reschedule_appointment", err)
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.UserID,
		Action:       "appointment_rescheduled",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata: map[string]string{
			"from": from,
			"to":   in.Date + " " + in.Time,
		},
	})

	return ap, nil
}
