package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// CancelAppointment frees the slot; cancelled appointments never conflict.
type CancelAppointment struct {
	change statusChange
}

func NewCancelAppointment(
	store domain.AppointmentStore,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		change: statusChange{
			store:  store,
			audit:  audit,
			now:    time.Now,
			action: "appointment_cancelled",
			apply:  domain.Cancel,
		},
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.change.run(ctx, barbershopID, userID, appointmentID)
}
