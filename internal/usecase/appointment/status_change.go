package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// statusChange loads an appointment, applies a lifecycle action and stores it.
type statusChange struct {
	store  domain.AppointmentStore
	audit  *audit.Dispatcher
	now    func() time.Time
	action string
	apply  func(ap *models.Appointment, now time.Time) error
}

func (sc statusChange) run(
	ctx context.Context,
	barbershopID uint,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := sc.store.GetAppointment(ctx, barbershopID, appointmentID)
	if err != nil {
		return nil, lookupErr(err, "appointment_not_found", "get_appointment")
	}

	if err := sc.apply(ap, sc.now()); err != nil {
		return nil, err
	}

	if err := sc.store.UpdateAppointment(ctx, ap); err != nil {
		return nil, domain.Persistence("update_appointment", err)
	}

	sc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       sc.action,
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
